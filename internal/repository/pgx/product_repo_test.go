package pgxrepo

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/jackc/pgx/v5/pgtype"

	"productos-api/internal/domain"
)

// column is one encoded field of a result row.
type column struct {
	oid   uint32
	value any
}

// encodedRow decodes binary wire values through pgtype the way a pgx row does.
type encodedRow struct {
	m    *pgtype.Map
	oids []uint32
	raw  [][]byte
}

func newEncodedRow(t *testing.T, cols ...column) *encodedRow {
	t.Helper()
	r := &encodedRow{m: pgtype.NewMap()}
	for _, col := range cols {
		var buf []byte
		if col.value != nil {
			var err error
			buf, err = r.m.Encode(col.oid, pgtype.BinaryFormatCode, col.value, nil)
			qt.Assert(t, err, qt.IsNil)
		}
		r.oids = append(r.oids, col.oid)
		r.raw = append(r.raw, buf)
	}
	return r
}

func (r *encodedRow) Scan(dest ...any) error {
	for i, d := range dest {
		if err := r.m.Scan(r.oids[i], pgtype.BinaryFormatCode, r.raw[i], d); err != nil {
			return err
		}
	}
	return nil
}

func TestScanProductPriceColumnTypes(t *testing.T) {
	tests := []struct {
		name     string
		priceOID uint32
		price    any
		want     float64
	}{
		{"double precision", pgtype.Float8OID, 12.345, 12.345},
		{"double precision whole", pgtype.Float8OID, 40.0, 40},
		{"numeric", pgtype.NumericOID, 12.5, 12.5},
		{"numeric three decimals", pgtype.NumericOID, 12.345, 12.345},
		{"null", pgtype.Float8OID, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)
			row := newEncodedRow(t,
				column{pgtype.Int8OID, int64(7)},
				column{pgtype.TextOID, "Cojín"},
				column{pgtype.TextOID, nil},
				column{pgtype.TextOID, "Hogar"},
				column{tt.priceOID, tt.price},
			)

			p, err := scanProduct(row)
			c.Assert(err, qt.IsNil)
			c.Assert(p, qt.Equals, domain.Product{ID: 7, Name: "Cojín", Category: "Hogar", Price: tt.want})
		})
	}
}
