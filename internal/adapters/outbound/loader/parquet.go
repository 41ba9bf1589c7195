package loader

import (
	"context"
	"fmt"

	"github.com/apache/arrow/go/v14/arrow"
	"github.com/apache/arrow/go/v14/arrow/array"
	"github.com/apache/arrow/go/v14/arrow/memory"
	"github.com/apache/arrow/go/v14/parquet/file"
	"github.com/apache/arrow/go/v14/parquet/pqarrow"

	"github.com/dfguard/dfguard/internal/domain"
)

// readParquet reads every row group of the file into memory.
func readParquet(ctx context.Context, path string) (*domain.Table, error) {
	pqReader, err := file.OpenParquetFile(path, false)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer pqReader.Close()

	arrowReader, err := pqarrow.NewFileReader(pqReader, pqarrow.ArrowReadProperties{
		Parallel: true,
	}, memory.DefaultAllocator)
	if err != nil {
		return nil, fmt.Errorf("failed to create arrow reader: %w", err)
	}

	tbl, err := arrowReader.ReadTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read table: %w", err)
	}
	defer tbl.Release()

	schema := tbl.Schema()
	columns := make([]domain.Column, 0, tbl.NumCols())
	for i := 0; i < int(tbl.NumCols()); i++ {
		field := schema.Field(i)
		values := make([]any, 0, tbl.NumRows())
		for _, chunk := range tbl.Column(i).Data().Chunks() {
			for j := 0; j < chunk.Len(); j++ {
				values = append(values, arrowValue(chunk, j))
			}
		}

		col := domain.NewColumn(field.Name, values)
		if col.NullCount() == len(values) {
			// No cell to infer from, so the schema decides.
			col.Kind = schemaKind(field.Type, len(values) > 0)
		}
		columns = append(columns, col)
	}
	return domain.NewTable(columns...)
}

func arrowValue(arr arrow.Array, i int) any {
	if arr.IsNull(i) {
		return nil
	}
	switch a := arr.(type) {
	case *array.Int8:
		return int64(a.Value(i))
	case *array.Int16:
		return int64(a.Value(i))
	case *array.Int32:
		return int64(a.Value(i))
	case *array.Int64:
		return a.Value(i)
	case *array.Uint8:
		return int64(a.Value(i))
	case *array.Uint16:
		return int64(a.Value(i))
	case *array.Uint32:
		return int64(a.Value(i))
	case *array.Uint64:
		return int64(a.Value(i))
	case *array.Float32:
		return float64(a.Value(i))
	case *array.Float64:
		return a.Value(i)
	case *array.Boolean:
		return a.Value(i)
	case *array.String:
		return a.Value(i)
	case *array.LargeString:
		return a.Value(i)
	case *array.Timestamp:
		unit := a.DataType().(*arrow.TimestampType).Unit
		return a.Value(i).ToTime(unit)
	case *array.Date32:
		return a.Value(i).ToTime()
	case *array.Date64:
		return a.Value(i).ToTime()
	default:
		return a.ValueStr(i)
	}
}

// schemaKind maps an arrow type to a column kind. Integer columns holding
// only nulls widen to float, like any integer column with a null.
func schemaKind(t arrow.DataType, hasNulls bool) domain.ColumnKind {
	switch t.ID() {
	case arrow.INT8, arrow.INT16, arrow.INT32, arrow.INT64,
		arrow.UINT8, arrow.UINT16, arrow.UINT32, arrow.UINT64:
		if hasNulls {
			return domain.KindFloat
		}
		return domain.KindInteger
	case arrow.FLOAT16, arrow.FLOAT32, arrow.FLOAT64:
		return domain.KindFloat
	case arrow.BOOL:
		if hasNulls {
			return domain.KindObject
		}
		return domain.KindBool
	case arrow.TIMESTAMP, arrow.DATE32, arrow.DATE64:
		return domain.KindTimestamp
	default:
		return domain.KindObject
	}
}
