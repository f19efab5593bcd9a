package mocks

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/superbmd/bmd-cli/internal/core/domain"
)

// paginate slices ids for one page and builds the matching metadata.
func paginate(total, page, limit int) (start, end int, pg domain.Pagination) {
	if limit <= 0 {
		limit = 10
	}
	if page <= 0 {
		page = 1
	}
	totalPages := (total + limit - 1) / limit
	start = (page - 1) * limit
	if start > total {
		start = total
	}
	end = start + limit
	if end > total {
		end = total
	}
	pg = domain.Pagination{
		TotalItems:   total,
		TotalPages:   totalPages,
		CurrentPage:  page,
		ItemsPerPage: limit,
	}
	return start, end, pg
}

// MockAssetAPI is an in-memory implementation of the AssetAPI port for
// testing. Setting Err makes every call fail with that error.
type MockAssetAPI struct {
	mu     sync.RWMutex
	nextID int
	assets map[int]*domain.Asset

	Err error
}

// NewMockAssetAPI creates an empty mock asset API
func NewMockAssetAPI() *MockAssetAPI {
	return &MockAssetAPI{nextID: 1, assets: make(map[int]*domain.Asset)}
}

// Seed inserts assets directly, assigning ids when missing
func (m *MockAssetAPI) Seed(assets ...domain.Asset) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, a := range assets {
		if a.ID == 0 {
			a.ID = m.nextID
		}
		if a.ID >= m.nextID {
			m.nextID = a.ID + 1
		}
		copied := a
		m.assets[a.ID] = &copied
	}
}

func (m *MockAssetAPI) matches(a *domain.Asset, f domain.AssetFilter) bool {
	if f.Search != "" {
		s := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(a.Name), s) && !strings.Contains(strings.ToLower(a.Code), s) {
			return false
		}
	}
	if f.LocationID > 0 && a.LocationID != f.LocationID {
		return false
	}
	if f.Condition != "" && a.Condition != f.Condition {
		return false
	}
	if f.ResponsibleParty != "" && !strings.Contains(strings.ToLower(a.ResponsibleParty), strings.ToLower(f.ResponsibleParty)) {
		return false
	}
	if f.StartDate != "" && a.EntryDate < f.StartDate {
		return false
	}
	if f.EndDate != "" && a.EntryDate > f.EndDate {
		return false
	}
	return true
}

// List returns one page of matching assets ordered by id
func (m *MockAssetAPI) List(ctx context.Context, filter domain.AssetFilter, page, limit int) ([]domain.Asset, domain.Pagination, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.Err != nil {
		return nil, domain.Pagination{}, m.Err
	}

	matched := make([]domain.Asset, 0, len(m.assets))
	for _, a := range m.assets {
		if m.matches(a, filter) {
			matched = append(matched, *a)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	start, end, pg := paginate(len(matched), page, limit)
	return matched[start:end], pg, nil
}

// Get retrieves an asset by id
func (m *MockAssetAPI) Get(ctx context.Context, id int) (*domain.Asset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.Err != nil {
		return nil, m.Err
	}
	a, ok := m.assets[id]
	if !ok {
		return nil, fmt.Errorf("asset not found: %d", id)
	}
	copied := *a
	return &copied, nil
}

// Create stores a new asset
func (m *MockAssetAPI) Create(ctx context.Context, in domain.AssetInput) (*domain.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	a := &domain.Asset{
		ID:               m.nextID,
		Name:             in.Name,
		Code:             in.Code,
		Condition:        in.Condition,
		LocationID:       in.LocationID,
		ResponsibleParty: in.ResponsibleParty,
		EntryDate:        in.EntryDate,
		UpdatedDate:      in.UpdatedDate,
		Image:            in.Image,
	}
	m.nextID++
	m.assets[a.ID] = a
	copied := *a
	return &copied, nil
}

// Update replaces the writable fields of an asset
func (m *MockAssetAPI) Update(ctx context.Context, id int, in domain.AssetInput) (*domain.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	a, ok := m.assets[id]
	if !ok {
		return nil, fmt.Errorf("asset not found: %d", id)
	}
	a.Name = in.Name
	a.Code = in.Code
	a.Condition = in.Condition
	a.LocationID = in.LocationID
	a.ResponsibleParty = in.ResponsibleParty
	a.EntryDate = in.EntryDate
	a.UpdatedDate = in.UpdatedDate
	a.Image = in.Image
	copied := *a
	return &copied, nil
}

// Delete removes an asset by id
func (m *MockAssetAPI) Delete(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.assets[id]; !ok {
		return fmt.Errorf("asset not found: %d", id)
	}
	delete(m.assets, id)
	return nil
}

// MockLocationAPI is an in-memory implementation of the LocationAPI port
type MockLocationAPI struct {
	mu        sync.RWMutex
	nextID    int
	locations map[int]*domain.Location

	Err error
}

// NewMockLocationAPI creates an empty mock location API
func NewMockLocationAPI() *MockLocationAPI {
	return &MockLocationAPI{nextID: 1, locations: make(map[int]*domain.Location)}
}

// Seed inserts locations directly, assigning ids when missing
func (m *MockLocationAPI) Seed(locations ...domain.Location) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, l := range locations {
		if l.ID == 0 {
			l.ID = m.nextID
		}
		if l.ID >= m.nextID {
			m.nextID = l.ID + 1
		}
		copied := l
		m.locations[l.ID] = &copied
	}
}

// List returns one page of matching locations ordered by id
func (m *MockLocationAPI) List(ctx context.Context, filter domain.LocationFilter, page, limit int) ([]domain.Location, domain.Pagination, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.Err != nil {
		return nil, domain.Pagination{}, m.Err
	}

	matched := make([]domain.Location, 0, len(m.locations))
	for _, l := range m.locations {
		if filter.Search != "" {
			s := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(l.Name), s) && !strings.Contains(strings.ToLower(l.Code), s) {
				continue
			}
		}
		matched = append(matched, *l)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	start, end, pg := paginate(len(matched), page, limit)
	return matched[start:end], pg, nil
}

// Get retrieves a location by id
func (m *MockLocationAPI) Get(ctx context.Context, id int) (*domain.Location, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.Err != nil {
		return nil, m.Err
	}
	l, ok := m.locations[id]
	if !ok {
		return nil, fmt.Errorf("location not found: %d", id)
	}
	copied := *l
	return &copied, nil
}

// Create stores a new location
func (m *MockLocationAPI) Create(ctx context.Context, in domain.LocationInput) (*domain.Location, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	l := &domain.Location{ID: m.nextID, Name: in.Name, Code: in.Code, Address: in.Address}
	m.nextID++
	m.locations[l.ID] = l
	copied := *l
	return &copied, nil
}

// Update replaces the writable fields of a location
func (m *MockLocationAPI) Update(ctx context.Context, id int, in domain.LocationInput) (*domain.Location, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	l, ok := m.locations[id]
	if !ok {
		return nil, fmt.Errorf("location not found: %d", id)
	}
	l.Name = in.Name
	l.Code = in.Code
	l.Address = in.Address
	copied := *l
	return &copied, nil
}

// Delete removes a location by id
func (m *MockLocationAPI) Delete(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.locations[id]; !ok {
		return fmt.Errorf("location not found: %d", id)
	}
	delete(m.locations, id)
	return nil
}

// MockUserAPI is an in-memory implementation of the UserAPI port.
// Passwords set via Seed or Create are accepted by Login.
type MockUserAPI struct {
	mu        sync.RWMutex
	nextID    int
	users     map[int]*domain.User
	passwords map[string]string

	Err error
}

// NewMockUserAPI creates an empty mock user API
func NewMockUserAPI() *MockUserAPI {
	return &MockUserAPI{nextID: 1, users: make(map[int]*domain.User), passwords: make(map[string]string)}
}

// Seed inserts a user with a known password
func (m *MockUserAPI) Seed(user domain.User, password string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if user.ID == 0 {
		user.ID = m.nextID
	}
	if user.ID >= m.nextID {
		m.nextID = user.ID + 1
	}
	copied := user
	m.users[user.ID] = &copied
	m.passwords[user.Username] = password
}

// List returns one page of matching users ordered by id
func (m *MockUserAPI) List(ctx context.Context, filter domain.UserFilter, page, limit int) ([]domain.User, domain.Pagination, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.Err != nil {
		return nil, domain.Pagination{}, m.Err
	}

	matched := make([]domain.User, 0, len(m.users))
	for _, u := range m.users {
		if filter.Search != "" && !strings.Contains(strings.ToLower(u.Username), strings.ToLower(filter.Search)) {
			continue
		}
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		matched = append(matched, *u)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	start, end, pg := paginate(len(matched), page, limit)
	return matched[start:end], pg, nil
}

// Get retrieves a user by id
func (m *MockUserAPI) Get(ctx context.Context, id int) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.Err != nil {
		return nil, m.Err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("user not found: %d", id)
	}
	copied := *u
	return &copied, nil
}

// Create stores a new user
func (m *MockUserAPI) Create(ctx context.Context, in domain.UserInput) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	u := &domain.User{ID: m.nextID, Username: in.Username, Role: in.Role}
	m.nextID++
	m.users[u.ID] = u
	m.passwords[in.Username] = in.Password
	copied := *u
	return &copied, nil
}

// Update replaces the writable fields of a user
func (m *MockUserAPI) Update(ctx context.Context, id int, in domain.UserInput) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("user not found: %d", id)
	}
	u.Username = in.Username
	u.Role = in.Role
	if in.Password != "" {
		m.passwords[in.Username] = in.Password
	}
	copied := *u
	return &copied, nil
}

// Delete removes a user by id
func (m *MockUserAPI) Delete(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	u, ok := m.users[id]
	if !ok {
		return fmt.Errorf("user not found: %d", id)
	}
	delete(m.passwords, u.Username)
	delete(m.users, id)
	return nil
}

// Login checks credentials against seeded users
func (m *MockUserAPI) Login(ctx context.Context, username, password string) (domain.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.Err != nil {
		return domain.Session{}, m.Err
	}
	stored, ok := m.passwords[username]
	if !ok || stored != password {
		return domain.Session{}, fmt.Errorf("invalid username or password")
	}
	for _, u := range m.users {
		if u.Username == username {
			return domain.Session{Token: "mock-token-" + username, User: *u}, nil
		}
	}
	return domain.Session{}, fmt.Errorf("invalid username or password")
}

// MockReportAPI serves canned aggregates for the report endpoints
type MockReportAPI struct {
	mu sync.RWMutex

	Summary       domain.DashboardSummary
	LocationRows  []domain.LocationReportRow
	ConditionRows []domain.ConditionReportRow
	InOutRows     []domain.InOutReportRow

	Err error
}

// NewMockReportAPI creates an empty mock report API
func NewMockReportAPI() *MockReportAPI {
	return &MockReportAPI{}
}

// Dashboard returns the canned summary
func (m *MockReportAPI) Dashboard(ctx context.Context) (*domain.DashboardSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.Err != nil {
		return nil, m.Err
	}
	summary := m.Summary
	return &summary, nil
}

// AssetsByLocation returns the canned location rows
func (m *MockReportAPI) AssetsByLocation(ctx context.Context, filter domain.ReportFilter) ([]domain.LocationReportRow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.Err != nil {
		return nil, m.Err
	}
	return append([]domain.LocationReportRow(nil), m.LocationRows...), nil
}

// AssetsByCondition returns the canned condition rows
func (m *MockReportAPI) AssetsByCondition(ctx context.Context, filter domain.ReportFilter) ([]domain.ConditionReportRow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.Err != nil {
		return nil, m.Err
	}
	return append([]domain.ConditionReportRow(nil), m.ConditionRows...), nil
}

// AssetsInOut returns the canned movement rows
func (m *MockReportAPI) AssetsInOut(ctx context.Context, filter domain.ReportFilter) ([]domain.InOutReportRow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.Err != nil {
		return nil, m.Err
	}
	return append([]domain.InOutReportRow(nil), m.InOutRows...), nil
}
