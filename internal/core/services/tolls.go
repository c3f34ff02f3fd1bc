package services

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/feezz8/toll-aggregation/internal/core/domain"
	"github.com/feezz8/toll-aggregation/internal/core/ports/driving"
	"github.com/feezz8/toll-aggregation/internal/logger"
)

// Ensure TollService implements the interface.
var _ driving.TollService = (*TollService)(nil)

// Upload defaults.
const (
	// DefaultStationsSource is read by ResetStations when no source is given.
	DefaultStationsSource = "tollstations2024.csv"

	stationsFilename = "tollstations2024.csv"
	passesFilename   = "passes.csv"
	uploadField      = "file"
	csvContentType   = "text/csv"
)

// TollService maps each catalog operation onto one dispatched request.
type TollService struct {
	dispatcher driving.Dispatcher
}

// NewTollService creates a new toll service.
func NewTollService(dispatcher driving.Dispatcher) *TollService {
	return &TollService{dispatcher: dispatcher}
}

// HealthCheck reports the server and database status.
func (s *TollService) HealthCheck(ctx context.Context, credential, format string) (domain.Outcome, error) {
	return s.get(ctx, credential, format, "admin", "healthcheck"), nil
}

// TollStationPasses lists the passes recorded at a station.
func (s *TollService) TollStationPasses(ctx context.Context, credential string, q domain.StationPassesQuery) (domain.Outcome, error) {
	if err := q.Validate(); err != nil {
		return domain.Outcome{}, err
	}
	return s.get(ctx, credential, q.Format, "tollStationPasses", q.StationID, q.From, q.To), nil
}

// PassAnalysis lists passes of tagOp tags at stationOp stations.
func (s *TollService) PassAnalysis(ctx context.Context, credential string, q domain.OperatorPairQuery) (domain.Outcome, error) {
	if err := q.Validate(); err != nil {
		return domain.Outcome{}, err
	}
	return s.get(ctx, credential, q.Format, "passAnalysis", q.StationOpID, q.TagOpID, q.From, q.To), nil
}

// PassesCost sums what tagOp owes stationOp.
func (s *TollService) PassesCost(ctx context.Context, credential string, q domain.OperatorPairQuery) (domain.Outcome, error) {
	if err := q.Validate(); err != nil {
		return domain.Outcome{}, err
	}
	return s.get(ctx, credential, q.Format, "passesCost", q.StationOpID, q.TagOpID, q.From, q.To), nil
}

// ChargesBy lists what every visiting operator owes opID.
func (s *TollService) ChargesBy(ctx context.Context, credential string, q domain.ChargesQuery) (domain.Outcome, error) {
	if err := q.Validate(); err != nil {
		return domain.Outcome{}, err
	}
	return s.get(ctx, credential, q.Format, "chargesBy", q.OpID, q.From, q.To), nil
}

// ResetStations reloads toll stations from a local CSV file.
// An empty source means DefaultStationsSource in the working directory.
func (s *TollService) ResetStations(ctx context.Context, credential, source string) (domain.Outcome, error) {
	if source == "" {
		source = DefaultStationsSource
	}
	return s.upload(ctx, credential, "/admin/resetstations", source, stationsFilename)
}

// ResetPasses deletes every pass record.
func (s *TollService) ResetPasses(ctx context.Context, credential, format string) (domain.Outcome, error) {
	return s.dispatcher.Send(ctx, domain.Request{
		Path:       "/admin/resetpasses",
		Method:     domain.MethodPost,
		Query:      map[string]string{"format": NormalizeFormat(format)},
		Credential: credential,
	}), nil
}

// AddPasses uploads pass events from a local CSV file.
func (s *TollService) AddPasses(ctx context.Context, credential, source string) (domain.Outcome, error) {
	if strings.TrimSpace(source) == "" {
		return domain.Outcome{}, fmt.Errorf("%w: a CSV source file is required", domain.ErrInvalidInput)
	}
	return s.upload(ctx, credential, "/admin/addpasses", source, passesFilename)
}

// NormalizeFormat lower-cases format and defaults it to json.
func NormalizeFormat(format string) string {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		return domain.FormatJSON
	}
	return format
}

// get sends a GET to the path built from segments, each one path-escaped.
func (s *TollService) get(ctx context.Context, credential, format string, segments ...string) domain.Outcome {
	return s.dispatcher.Send(ctx, domain.Request{
		Path:       buildPath(segments...),
		Method:     domain.MethodGet,
		Query:      map[string]string{"format": NormalizeFormat(format)},
		Credential: credential,
	})
}

// upload opens source and posts it as a multipart CSV part.
// The file is closed on every path; if it cannot be opened no request is sent.
func (s *TollService) upload(ctx context.Context, credential, path, source, filename string) (domain.Outcome, error) {
	f, err := os.Open(source)
	if err != nil {
		return domain.Outcome{}, fmt.Errorf("%w: %w", domain.ErrFileUnavailable, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			logger.Warn("close %s: %v", source, cerr)
		}
	}()

	logger.Debug("uploading %s as %s to %s", source, filename, path)
	return s.dispatcher.Send(ctx, domain.Request{
		Path:   path,
		Method: domain.MethodPost,
		File: &domain.FilePayload{
			Field:       uploadField,
			Filename:    filename,
			ContentType: csvContentType,
			Content:     f,
		},
		Credential: credential,
	}), nil
}

func buildPath(segments ...string) string {
	var b strings.Builder
	for _, segment := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(segment))
	}
	return b.String()
}
