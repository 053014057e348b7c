package dataset

import (
	"fmt"
	"io"
	"os"

	"github.com/dewoprasetyo/olist-insights/internal/logger"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Columns every input table must carry.
var requiredColumns = []string{
	"order_id",
	"customer_unique_id",
	"order_purchase_timestamp",
	"payment_value",
}

// LoadCSV reads the denormalized transaction table from a CSV file.
func LoadCSV(path string, appLogger *logger.Logger) (*Dataset, error) {
	const component = "DatasetLoader"

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file %s: %v", path, err)
	}
	defer file.Close()

	appLogger.Debug(component, "Reading dataset: path=%s", path)

	ds, err := ReadCSVFrom(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset file %s: %v", path, err)
	}

	appLogger.Info(component, "Dataset loaded: path=%s rows=%d", path, ds.Len())
	return ds, nil
}

// ReadCSVFrom decodes a CSV transaction table from r and converts it into
// a sorted Dataset.
func ReadCSVFrom(r io.Reader) (*Dataset, error) {
	df := dataframe.ReadCSV(r,
		dataframe.WithLazyQuotes(true),
		dataframe.DefaultType(series.String),
		dataframe.WithTypes(map[string]series.Type{
			"payment_value":      series.Float,
			"approval_time_diff": series.Float,
			"delivery_time_diff": series.Float,
		}),
	)
	if df.Error() != nil {
		return nil, fmt.Errorf("failed to decode csv: %v", df.Error())
	}
	if df.Nrow() == 0 {
		return nil, fmt.Errorf("dataframe is empty")
	}

	for _, col := range requiredColumns {
		if !containsString(df.Names(), col) {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	records := make([]Transaction, 0, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		records = append(records, rowToTransaction(df, i))
	}

	return New(records), nil
}
