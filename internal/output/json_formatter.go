package output

import (
	"encoding/json"
	"fmt"

	"github.com/rgehrsitz/rothgo/internal/calculation"
	"github.com/rgehrsitz/rothgo/internal/domain"
)

// JSONFormatter serializes the projection set, plus the IRMAA analysis of
// the primary run.
type JSONFormatter struct {
	Pretty bool
}

func (j JSONFormatter) Name() string { return "json" }

type jsonReport struct {
	*domain.ProjectionSet
	IRMAAAnalysis *domain.IRMAAAnalysis `json:"irmaaAnalysis,omitempty"`
}

func (j JSONFormatter) Format(set *domain.ProjectionSet) ([]byte, error) {
	if set == nil {
		return nil, fmt.Errorf("no projections to format")
	}
	report := jsonReport{ProjectionSet: set}
	if primary := set.Primary(); primary != nil {
		report.IRMAAAnalysis = calculation.AnalyzeIRMAARisk(primary.Records, set.TaxParameters)
	}
	if j.Pretty {
		return json.MarshalIndent(report, "", "  ")
	}
	return json.Marshal(report)
}
