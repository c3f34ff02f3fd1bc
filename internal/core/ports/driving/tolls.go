package driving

import (
	"context"

	"github.com/feezz8/toll-aggregation/internal/core/domain"
)

// TollService exposes the toll API's command catalog.
// Each method validates its input and performs at most one request.
// A non-nil error means no request was sent.
type TollService interface {
	// HealthCheck reports the server and database status.
	HealthCheck(ctx context.Context, credential, format string) (domain.Outcome, error)

	// TollStationPasses lists the passes recorded at a station.
	TollStationPasses(ctx context.Context, credential string, q domain.StationPassesQuery) (domain.Outcome, error)

	// PassAnalysis lists passes of tagOp tags at stationOp stations.
	PassAnalysis(ctx context.Context, credential string, q domain.OperatorPairQuery) (domain.Outcome, error)

	// PassesCost sums what tagOp owes stationOp.
	PassesCost(ctx context.Context, credential string, q domain.OperatorPairQuery) (domain.Outcome, error)

	// ChargesBy lists what every visiting operator owes opID.
	ChargesBy(ctx context.Context, credential string, q domain.ChargesQuery) (domain.Outcome, error)

	// ResetStations reloads toll stations from a local CSV file.
	ResetStations(ctx context.Context, credential, source string) (domain.Outcome, error)

	// ResetPasses deletes every pass record.
	ResetPasses(ctx context.Context, credential, format string) (domain.Outcome, error)

	// AddPasses uploads pass events from a local CSV file.
	AddPasses(ctx context.Context, credential, source string) (domain.Outcome, error)
}
