package repository

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
)

// https://www.postgresql.org/docs/current/errcodes-appendix.html
const pgerrUniqueViolation = "23505"

func numericFromFloat(f float64) (pgtype.Numeric, error) {
	var n pgtype.Numeric
	if err := n.Scan(fmt.Sprintf("%f", f)); err != nil {
		return pgtype.Numeric{}, fmt.Errorf("scan numeric: %w", err)
	}
	return n, nil
}

func floatFromNumeric(n pgtype.Numeric) (float64, error) {
	v, err := n.Float64Value()
	if err != nil {
		return 0, fmt.Errorf("convert numeric to float64: %w", err)
	}
	return v.Float64, nil
}
