package votecasting

import "github.com/VictoriaMetrics/metrics"

var (
	ballotsGenerated   = metrics.NewCounter("votecasting_ballots_generated")
	responsesRejected  = metrics.NewCounter("votecasting_ot_responses_rejected")
	returnCodesDerived = metrics.NewCounter("votecasting_return_codes_derived")
)
