package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordDatasetLoad(t *testing.T) {
	before := testutil.ToFloat64(DatasetLoadErrors.WithLabelValues("test"))

	RecordDatasetLoad("test", 20*time.Millisecond, 42, nil)
	if got := testutil.ToFloat64(DatasetRecords); got != 42 {
		t.Fatalf("DatasetRecords = %v, want 42", got)
	}

	RecordDatasetLoad("test", time.Millisecond, 0, errors.New("connection refused"))
	if got := testutil.ToFloat64(DatasetLoadErrors.WithLabelValues("test")); got != before+1 {
		t.Fatalf("DatasetLoadErrors = %v, want %v", got, before+1)
	}
	if got := testutil.ToFloat64(DatasetRecords); got != 42 {
		t.Fatalf("failed load must not reset DatasetRecords, got %v", got)
	}
}

func TestRecordAPIRequest(t *testing.T) {
	c := APIRequestsTotal.WithLabelValues("GET", "/api/v1/overview", "200")
	before := testutil.ToFloat64(c)
	RecordAPIRequest("GET", "/api/v1/overview", 200, 3*time.Millisecond)
	if got := testutil.ToFloat64(c); got != before+1 {
		t.Fatalf("APIRequestsTotal = %v, want %v", got, before+1)
	}
}

func TestRecordPageChange(t *testing.T) {
	c := PageChanges.WithLabelValues("advanced")
	before := testutil.ToFloat64(c)
	RecordPageChange("advanced")
	RecordFilteredView("advanced", 12)
	if got := testutil.ToFloat64(c); got != before+1 {
		t.Fatalf("PageChanges = %v, want %v", got, before+1)
	}
}
