package listing

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"shelf/internal/catalog"
	"shelf/internal/logging"
	"shelf/internal/session"
)

// DefaultPageSize bounds the list view when no limit is configured.
const DefaultPageSize = 20

// Request carries one inbound list-view request.
type Request struct {
	Params    url.Values
	SessionID string
	UserID    int64
}

// Pagination describes the slice of the result set that was returned. A nil
// Pagination on the page means the whole result set came back unpaged.
type Pagination struct {
	Page    int `json:"page"`
	PerPage int `json:"perPage"`
	Total   int `json:"total"`
}

// Page is the list-view result: the items, the filter state that produced
// them, and whether anything beyond the defaults is in effect.
type Page struct {
	Items        []*catalog.Item
	Filters      session.FilterState
	FilterActive bool
	Pagination   *Pagination
}

// Outcome is either a redirect target or a rendered page, never both.
type Outcome struct {
	Redirect string
	Page     *Page
}

// Builder turns list-view requests into catalog queries. It owns the session
// filter state lifecycle and the per-user sort preference.
type Builder struct {
	store    *catalog.Store
	sessions *session.Store
	pageSize int
	listPath string
	logger   *slog.Logger
}

// NewBuilder wires a query builder over the catalog store and session store.
func NewBuilder(store *catalog.Store, sessions *session.Store, pageSize int, logger *slog.Logger) *Builder {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Builder{
		store:    store,
		sessions: sessions,
		pageSize: pageSize,
		listPath: "/items",
		logger:   logger.With(logging.FieldComponent, "listing"),
	}
}

// Handle resolves one list request. The decision order is fixed: an explicit
// reset clears the session and redirects bare; supplied filter keys replace
// the session state wholesale and run the query; a bare request with
// remembered state redirects back into that state; a bare request with
// nothing remembered runs the defaults.
func (b *Builder) Handle(ctx context.Context, req Request) (*Outcome, error) {
	if req.Params.Has(paramReset) {
		b.sessions.Clear(req.SessionID)
		b.logger.Debug("filter state reset", logging.FieldSessionID, req.SessionID)
		return &Outcome{Redirect: b.listPath}, nil
	}

	if hasFilterKeys(req.Params) {
		state := stateFromValues(req.Params)
		b.sessions.Set(req.SessionID, state)
		if err := b.persistSortPreference(ctx, req, state); err != nil {
			return nil, err
		}
		return b.execute(ctx, req, state)
	}

	if state, ok := b.sessions.Get(req.SessionID); ok && !state.IsZero() {
		return &Outcome{Redirect: b.listPath + "?" + valuesFromState(state).Encode()}, nil
	}

	return b.execute(ctx, req, session.FilterState{})
}

// persistSortPreference records an explicitly requested ordering as the
// user's durable default. State saved to the session alone is ephemeral; the
// preference outlives it.
func (b *Builder) persistSortPreference(ctx context.Context, req Request, state session.FilterState) error {
	field := parseSortField(state.SortField)
	order := parseSortOrder(state.SortOrder)
	if field == "" && order == "" {
		return nil
	}
	if field == "" {
		field = catalog.SortAdded
	}
	if order == "" {
		order = catalog.OrderDesc
	}
	if req.UserID == 0 {
		return nil
	}
	pref := catalog.SortPreference{Field: field, Order: order}
	if err := b.store.SaveSortPreference(ctx, req.UserID, pref); err != nil {
		return fmt.Errorf("save sort preference: %w", err)
	}
	return nil
}

func (b *Builder) execute(ctx context.Context, req Request, state session.FilterState) (*Outcome, error) {
	sortField, sortOrder, err := b.effectiveSort(ctx, req.UserID, state)
	if err != nil {
		return nil, err
	}

	query := catalog.SearchQuery{
		Text:      state.Query,
		Category:  parseCategory(state.Category),
		Lent:      parseLent(state.Lent),
		SortField: sortField,
		SortOrder: sortOrder,
	}
	if state.Location != "" {
		if id, convErr := strconv.ParseInt(state.Location, 10, 64); convErr == nil && id > 0 {
			query.LocationID = id
		}
	}

	unpaged := state.Limit == LimitAll
	page := 1
	if !unpaged {
		query.Limit = parsePositiveInt(state.Limit, b.pageSize)
		page = parsePositiveInt(req.Params.Get(paramPage), 1)
		query.Offset = (page - 1) * query.Limit
	}

	items, total, err := b.store.SearchItems(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search items: %w", err)
	}

	result := &Page{
		Items:        items,
		Filters:      echoState(state, sortField, sortOrder),
		FilterActive: b.filterActive(state, sortField, sortOrder),
	}
	if !unpaged {
		result.Pagination = &Pagination{Page: page, PerPage: query.Limit, Total: total}
	}
	return &Outcome{Page: result}, nil
}

// effectiveSort resolves the ordering for a request: the state's explicit
// sort when valid, then the user's saved preference, then added descending.
func (b *Builder) effectiveSort(ctx context.Context, userID int64, state session.FilterState) (string, string, error) {
	field := parseSortField(state.SortField)
	order := parseSortOrder(state.SortOrder)
	if field != "" && order != "" {
		return field, order, nil
	}

	if userID != 0 {
		pref, err := b.store.SortPreferenceFor(ctx, userID)
		if err != nil {
			return "", "", fmt.Errorf("load sort preference: %w", err)
		}
		if pref != nil {
			if field == "" {
				field = parseSortField(pref.Field)
			}
			if order == "" {
				order = parseSortOrder(pref.Order)
			}
		}
	}
	if field == "" {
		field = catalog.SortAdded
	}
	if order == "" {
		order = catalog.OrderDesc
	}
	return field, order, nil
}

// echoState returns the filters as actually applied, so the caller can render
// the resolved sort even when the request left it implicit.
func echoState(state session.FilterState, sortField, sortOrder string) session.FilterState {
	state.SortField = sortField
	state.SortOrder = sortOrder
	return state
}

func (b *Builder) filterActive(state session.FilterState, sortField, sortOrder string) bool {
	if state.Query != "" || state.Category != "" || state.Location != "" || state.Lent != "" {
		return true
	}
	if sortField != catalog.SortAdded || sortOrder != catalog.OrderDesc {
		return true
	}
	if state.Limit != "" && state.Limit != strconv.Itoa(b.pageSize) {
		return true
	}
	return false
}
