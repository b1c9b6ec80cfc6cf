package output

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rgehrsitz/rothgo/internal/domain"
)

var (
	idMu   sync.Mutex
	idMono io.Reader
)

func init() {
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	idMono = ulid.Monotonic(rand.New(rand.NewSource(seed)), 0)
}

// NewReportID returns a time-sortable identifier stamped on every exported report.
func NewReportID() string {
	return NewReportIDAt(time.Now())
}

// NewReportIDAt returns a report ID carrying the given generation time.
func NewReportIDAt(t time.Time) string {
	idMu.Lock()
	defer idMu.Unlock()

	id, err := ulid.New(ulid.Timestamp(t.UTC()), idMono)
	if err != nil {
		panic(err)
	}
	return id.String()
}

// ReportTime extracts the generation time from a report ID.
func ReportTime(reportID string) (time.Time, error) {
	id, err := ulid.ParseStrict(reportID)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(id.Time()), nil
}

// NewProjectionSet stamps a fresh report ID and generation time on a set of runs.
func NewProjectionSet(name string, profile domain.ClientProfile, params domain.TaxParameters, runs ...domain.Projection) *domain.ProjectionSet {
	now := time.Now()
	return &domain.ProjectionSet{
		ReportID:      NewReportIDAt(now),
		GeneratedAt:   now,
		ScenarioName:  name,
		Profile:       profile,
		TaxParameters: params,
		Projections:   runs,
	}
}
