package service

import (
	"context"
	"encoding/json"
	"time"

	"ower-data/internal/domain"
	"ower-data/internal/repository"
	"ower-data/internal/store"
)

type fakeDebtorsRepo struct {
	debtors   map[int64]*domain.Debtor
	listData  json.RawMessage
	listCount int
	lastList  repository.ListDebtsParams
	requisite *domain.Requisite
}

func (f *fakeDebtorsRepo) ListDebts(ctx context.Context, p repository.ListDebtsParams) (json.RawMessage, int, error) {
	f.lastList = p
	return f.listData, f.listCount, nil
}

func (f *fakeDebtorsRepo) GetDebtor(ctx context.Context, id int64) (*domain.Debtor, error) {
	d, ok := f.debtors[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

func (f *fakeDebtorsRepo) GetDebtorName(ctx context.Context, id int64) (string, error) {
	d, ok := f.debtors[id]
	if !ok {
		return "", domain.ErrNotFound
	}
	return d.Name, nil
}

func (f *fakeDebtorsRepo) GetRequisite(ctx context.Context) (*domain.Requisite, error) {
	if f.requisite == nil {
		return nil, domain.ErrNotFound
	}
	return f.requisite, nil
}

type fakeHistoryRepo struct {
	records   map[string]*domain.HistoryRecord
	lastName  string
	lastExact bool
}

func (f *fakeHistoryRepo) LatestByName(ctx context.Context, personName string, exact bool) (*domain.HistoryRecord, error) {
	f.lastName = personName
	f.lastExact = exact
	rec, ok := f.records[personName]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return rec, nil
}

type fakeCallsRepo struct {
	calls   map[int64][]domain.DebtorCall
	created []domain.DebtorCall
	nextID  int64
}

func (f *fakeCallsRepo) ListByHistoryID(ctx context.Context, historyRecordID int64) ([]domain.DebtorCall, error) {
	return f.calls[historyRecordID], nil
}

func (f *fakeCallsRepo) Create(ctx context.Context, historyRecordID int64, callDate, callTopic string) (*domain.DebtorCall, error) {
	f.nextID++
	call := domain.DebtorCall{
		ID:              f.nextID,
		HistoryRecordID: historyRecordID,
		CallDate:        time.Now(),
		CallTopic:       callTopic,
	}
	f.created = append(f.created, call)
	return &call, nil
}

type fakeAuditRepo struct {
	entries []*domain.AuditEntry
	err     error
}

func (f *fakeAuditRepo) Create(ctx context.Context, e *domain.AuditEntry) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, e)
	return nil
}

type fakeGroupsRepo struct {
	groups  map[int64]*domain.KindergartenGroup
	nextID  int64
	deleted []int64
}

func (f *fakeGroupsRepo) List(ctx context.Context, p repository.ListGroupsParams) (json.RawMessage, int, error) {
	return nil, 0, nil
}

func (f *fakeGroupsRepo) GetByID(ctx context.Context, id int64) (*domain.KindergartenGroup, error) {
	g, ok := f.groups[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return g, nil
}

func (f *fakeGroupsRepo) FindByNameAndKindergarten(ctx context.Context, groupName, kindergartenName string, excludeID *int64) (*domain.KindergartenGroup, error) {
	for _, g := range f.groups {
		if excludeID != nil && g.ID == *excludeID {
			continue
		}
		if g.GroupName == groupName && g.KindergartenName == kindergartenName {
			return g, nil
		}
	}
	return nil, nil
}

func (f *fakeGroupsRepo) Create(ctx context.Context, g *domain.KindergartenGroup) (*domain.KindergartenGroup, error) {
	f.nextID++
	out := *g
	out.ID = f.nextID
	out.CreatedAt = time.Now()
	if f.groups == nil {
		f.groups = map[int64]*domain.KindergartenGroup{}
	}
	f.groups[out.ID] = &out
	return &out, nil
}

func (f *fakeGroupsRepo) Update(ctx context.Context, g *domain.KindergartenGroup) (*domain.KindergartenGroup, error) {
	existing, ok := f.groups[g.ID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	existing.KindergartenName = g.KindergartenName
	existing.GroupName = g.GroupName
	existing.GroupType = g.GroupType
	return existing, nil
}

func (f *fakeGroupsRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.groups[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.groups, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeKindergartenRepo struct {
	debts     map[int64]*domain.KindergartenDebt
	listData  json.RawMessage
	listCount int
	lastList  repository.ListKindergartenDebtsParams
	requisite *domain.Requisite
}

func (f *fakeKindergartenRepo) ListDebts(ctx context.Context, p repository.ListKindergartenDebtsParams) (json.RawMessage, int, error) {
	f.lastList = p
	return f.listData, f.listCount, nil
}

func (f *fakeKindergartenRepo) GetDebt(ctx context.Context, id int64) (*domain.KindergartenDebt, error) {
	d, ok := f.debts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

func (f *fakeKindergartenRepo) GetRequisite(ctx context.Context) (*domain.Requisite, error) {
	if f.requisite == nil {
		return nil, domain.ErrNotFound
	}
	return f.requisite, nil
}

type fakeChildrenRepo struct {
	children map[int64]*domain.ChildRosterEntry
	roster   []domain.ChildRosterItem
	nextID   int64
	created  int
}

func (f *fakeChildrenRepo) List(ctx context.Context, p repository.ListChildrenParams) (json.RawMessage, int, error) {
	return nil, 0, nil
}

func (f *fakeChildrenRepo) GetByID(ctx context.Context, id int64) (*domain.ChildRosterItem, error) {
	c, ok := f.children[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &domain.ChildRosterItem{ChildRosterEntry: *c}, nil
}

func (f *fakeChildrenRepo) FindByNameAndGroup(ctx context.Context, childName string, groupID int64, excludeID *int64) (*domain.ChildRosterEntry, error) {
	for _, c := range f.children {
		if excludeID != nil && c.ID == *excludeID {
			continue
		}
		if c.ChildName == childName && c.GroupID == groupID {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeChildrenRepo) Create(ctx context.Context, c *domain.ChildRosterEntry) (*domain.ChildRosterEntry, error) {
	f.nextID++
	f.created++
	out := *c
	out.ID = f.nextID
	out.CreatedAt = time.Now()
	if f.children == nil {
		f.children = map[int64]*domain.ChildRosterEntry{}
	}
	f.children[out.ID] = &out
	return &out, nil
}

func (f *fakeChildrenRepo) Update(ctx context.Context, c *domain.ChildRosterEntry) (*domain.ChildRosterEntry, error) {
	existing, ok := f.children[c.ID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	existing.ChildName = c.ChildName
	existing.ParentName = c.ParentName
	existing.PhoneNumber = c.PhoneNumber
	existing.GroupID = c.GroupID
	return existing, nil
}

func (f *fakeChildrenRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.children[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.children, id)
	return nil
}

func (f *fakeChildrenRepo) ListAll(ctx context.Context) ([]domain.ChildRosterItem, error) {
	return f.roster, nil
}

type fakeAttendanceRepo struct {
	listData  json.RawMessage
	listCount int
	lastList  repository.ListAttendanceParams
}

func (f *fakeAttendanceRepo) List(ctx context.Context, p repository.ListAttendanceParams) (json.RawMessage, int, error) {
	f.lastList = p
	return f.listData, f.listCount, nil
}

type fakePhonesRepo struct {
	byClientID []int64
	byDebtor   []string
}

func (f *fakePhonesRepo) InsertByClientID(ctx context.Context, clientID int64, phone string, debtor *domain.Debtor) error {
	f.byClientID = append(f.byClientID, clientID)
	return nil
}

func (f *fakePhonesRepo) InsertByDebtor(ctx context.Context, phone string, debtor *domain.Debtor) error {
	f.byDebtor = append(f.byDebtor, phone)
	return nil
}

type fakeRegistryRepo struct {
	person *domain.RegistryPerson
}

func (f *fakeRegistryRepo) FindFullIPN(ctx context.Context, name, ipnSuffix string) (*domain.RegistryPerson, error) {
	return f.person, nil
}

type fakeDocClient struct {
	lastReq DocRequest
	doc     []byte
}

func (f *fakeDocClient) GenerateDebtNotice(ctx context.Context, req DocRequest) ([]byte, error) {
	f.lastReq = req
	return f.doc, nil
}

type fakeKV struct {
	data map[string]string
}

func newFakeKV() *fakeKV { return &fakeKV{data: map[string]string{}} }

func (f *fakeKV) Get(ctx context.Context, key string) (string, error) {
	v, ok := f.data[key]
	if !ok {
		return "", store.ErrMiss
	}
	return v, nil
}

func (f *fakeKV) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	f.data[key] = value
	return nil
}

func (f *fakeKV) Del(ctx context.Context, key string) error {
	delete(f.data, key)
	return nil
}
