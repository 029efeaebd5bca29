package config

// Storage configures the S3-compatible object storage used for product images.
// PublicBaseURL is the externally reachable prefix under which uploaded
// objects are served; it defaults to the endpoint itself when empty.
type Storage struct {
	Endpoint      string `env:"STORAGE_ENDPOINT"`
	AccessKey     string `env:"STORAGE_ACCESS_KEY"`
	SecretKey     string `env:"STORAGE_SECRET_KEY"`
	Bucket        string `env:"STORAGE_BUCKET" envDefault:"images"`
	UseSSL        bool   `env:"STORAGE_USE_SSL" envDefault:"true"`
	PublicBaseURL string `env:"STORAGE_PUBLIC_BASE_URL"`
}

// Configured reports whether storage credentials are present. Image uploads
// are rejected, not silently skipped, when they are missing.
func (s Storage) Configured() bool {
	return s.Endpoint != "" && s.AccessKey != "" && s.SecretKey != ""
}
