package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/valuesearchapp/backend/internal/logger"
	"github.com/valuesearchapp/backend/internal/normalization"
	"github.com/valuesearchapp/backend/internal/repos"
	"github.com/valuesearchapp/backend/internal/types"
	"github.com/valuesearchapp/backend/internal/valuescore"
)

// PreferenceView is the wire shape of one (user, symbol) preference. An
// absent row renders as an empty status and an empty comment list rather than
// a 404; the frontend treats "no preference yet" as a normal state.
type PreferenceView struct {
	Symbol   string                    `json:"symbol"`
	Status   string                    `json:"status"`
	Comments []types.PreferenceComment `json:"comments"`
}

// PreferenceUpdate carries a partial update: nil fields are left untouched.
type PreferenceUpdate struct {
	Status   *string
	Comments *[]types.PreferenceComment
}

// StocksByStatusResult holds one by-status listing. Exactly one of Records
// and Pairs is populated, depending on whether the full projection was
// requested.
type StocksByStatusResult struct {
	Records []valuescore.Record
	Pairs   []repos.StockNamePair
}

type PreferenceService interface {
	GetPreference(ctx context.Context, userID uuid.UUID, symbol string) (*PreferenceView, error)
	UpdatePreference(ctx context.Context, userID uuid.UUID, symbol string, update PreferenceUpdate) (*PreferenceView, error)
	Counts(ctx context.Context, userID uuid.UUID) (map[string]int64, error)
	StocksByStatus(ctx context.Context, userID uuid.UUID, status string, full bool) (*StocksByStatusResult, error)
}

type preferenceService struct {
	log            *logger.Logger
	preferenceRepo repos.PreferenceRepo
	assessmentRepo repos.AssessmentRepo
}

func NewPreferenceService(log *logger.Logger, preferenceRepo repos.PreferenceRepo, assessmentRepo repos.AssessmentRepo) PreferenceService {
	serviceLog := log.With("service", "PreferenceService")
	return &preferenceService{
		log:            serviceLog,
		preferenceRepo: preferenceRepo,
		assessmentRepo: assessmentRepo,
	}
}

func decodeComments(raw datatypes.JSON) []types.PreferenceComment {
	comments := []types.PreferenceComment{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &comments); err != nil {
			comments = []types.PreferenceComment{}
		}
	}
	return comments
}

func viewOf(symbol string, pref *types.UserStockPreference) *PreferenceView {
	if pref == nil {
		return &PreferenceView{Symbol: symbol, Status: types.StatusNone, Comments: []types.PreferenceComment{}}
	}
	return &PreferenceView{
		Symbol:   pref.Symbol,
		Status:   pref.Status,
		Comments: decodeComments(pref.Comments),
	}
}

func (ps *preferenceService) GetPreference(ctx context.Context, userID uuid.UUID, symbol string) (*PreferenceView, error) {
	normalized := normalization.ParseSymbol(symbol)
	if normalized == "" {
		return nil, fmt.Errorf("symbol is required")
	}

	pref, err := ps.preferenceRepo.Get(ctx, nil, userID, normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stock preference: %w", err)
	}
	return viewOf(normalized, pref), nil
}

// UpdatePreference merges a partial update into the (user, symbol) row. Only
// the fields present in the update are written; the other columns keep their
// stored values via the upsert's column list.
func (ps *preferenceService) UpdatePreference(ctx context.Context, userID uuid.UUID, symbol string, update PreferenceUpdate) (*PreferenceView, error) {
	normalized := normalization.ParseSymbol(symbol)
	if normalized == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	if update.Status == nil && update.Comments == nil {
		return nil, fmt.Errorf("nothing to update: provide status or comments")
	}

	pref := &types.UserStockPreference{
		UserID: userID,
		Symbol: normalized,
	}
	columns := []string{}

	if update.Status != nil {
		status := strings.TrimSpace(*update.Status)
		if !types.ValidStatus(status) {
			return nil, fmt.Errorf("invalid status %q", status)
		}
		pref.Status = status
		columns = append(columns, "status")
	}
	if update.Comments != nil {
		comments := *update.Comments
		if comments == nil {
			comments = []types.PreferenceComment{}
		}
		for i := range comments {
			if strings.TrimSpace(comments[i].Text) == "" {
				return nil, fmt.Errorf("comment text must not be empty")
			}
			if comments[i].ID == "" {
				comments[i].ID = uuid.New().String()
			}
		}
		raw, err := json.Marshal(comments)
		if err != nil {
			return nil, fmt.Errorf("failed to encode comments: %w", err)
		}
		pref.Comments = datatypes.JSON(raw)
		columns = append(columns, "comments")
	}

	merged, err := ps.preferenceRepo.Upsert(ctx, nil, pref, columns)
	if err != nil {
		return nil, fmt.Errorf("failed to save stock preference: %w", err)
	}
	return viewOf(normalized, merged), nil
}

// Counts returns the number of tagged symbols per status, zero-filled so the
// response always carries all four tags.
func (ps *preferenceService) Counts(ctx context.Context, userID uuid.UUID) (map[string]int64, error) {
	statuses := []string{types.StatusAvoid, types.StatusWatch, types.StatusOwn, types.StatusHold}

	rows, err := ps.preferenceRepo.CountByStatus(ctx, nil, userID, statuses)
	if err != nil {
		return nil, fmt.Errorf("failed to count stock preferences: %w", err)
	}

	counts := make(map[string]int64, len(statuses))
	for _, status := range statuses {
		counts[status] = 0
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// StocksByStatus lists the symbols a user tagged with one status. With full
// set, the matching assessments are projected to records and sorted by name
// case-insensitively; otherwise slim symbol/name pairs come back.
func (ps *preferenceService) StocksByStatus(ctx context.Context, userID uuid.UUID, status string, full bool) (*StocksByStatusResult, error) {
	status = strings.TrimSpace(status)
	if status == types.StatusNone || !types.ValidStatus(status) {
		return nil, fmt.Errorf("invalid status %q", status)
	}

	symbols, err := ps.preferenceRepo.SymbolsByStatus(ctx, nil, userID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list symbols by status: %w", err)
	}

	docs, err := ps.assessmentRepo.GetBySymbols(ctx, nil, symbols)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assessments: %w", err)
	}

	if full {
		records := make([]valuescore.Record, 0, len(docs))
		for _, doc := range docs {
			records = append(records, valuescore.ProjectRecord(doc))
		}
		sort.SliceStable(records, func(i, j int) bool {
			return strings.ToLower(records[i].Name) < strings.ToLower(records[j].Name)
		})
		return &StocksByStatusResult{Records: records}, nil
	}

	// The slim listing keeps every tagged symbol, even when no assessment
	// exists for it anymore; the symbol stands in for the missing name.
	nameBySymbol := make(map[string]string, len(docs))
	for _, doc := range docs {
		record := valuescore.ProjectRecord(doc)
		if record.Symbol != "" && record.Name != "" {
			nameBySymbol[strings.ToUpper(record.Symbol)] = record.Name
		}
	}
	pairs := make([]repos.StockNamePair, 0, len(symbols))
	for _, symbol := range symbols {
		name := nameBySymbol[strings.ToUpper(symbol)]
		if name == "" {
			name = symbol
		}
		pairs = append(pairs, repos.StockNamePair{Symbol: symbol, Name: name})
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return strings.ToLower(pairs[i].Name) < strings.ToLower(pairs[j].Name)
	})
	return &StocksByStatusResult{Pairs: pairs}, nil
}
