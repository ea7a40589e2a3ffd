package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"payexsync/dto/model"
)

type statusUpdate struct {
	OrderID uint
	Status  model.OrderStatus
	Message string
}

type fakeOrders struct {
	mu      sync.Mutex
	orders  map[uint]*model.Order
	updates []statusUpdate
	notes   []string
	paid    []string
}

func newFakeOrders(orders ...*model.Order) *fakeOrders {
	f := &fakeOrders{orders: make(map[uint]*model.Order)}
	for _, o := range orders {
		f.orders[o.ID] = o
	}
	return f
}

func (f *fakeOrders) Load(ctx context.Context, orderID uint) (*model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[orderID]
	if !ok {
		return nil, ErrOrderNotFound
	}
	copied := *o
	return &copied, nil
}

func (f *fakeOrders) UpdateStatus(ctx context.Context, orderID uint, status model.OrderStatus, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, statusUpdate{orderID, status, message})
	f.orders[orderID].Status = status
	return nil
}

func (f *fakeOrders) AppendNote(ctx context.Context, orderID uint, note string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notes = append(f.notes, note)
	return nil
}

func (f *fakeOrders) MarkPaid(ctx context.Context, orderID uint, transactionRef string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paid = append(f.paid, transactionRef)
	return nil
}

func (f *fakeOrders) mutations() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.updates) + len(f.notes) + len(f.paid)
}

type fakeStore struct {
	mu      sync.Mutex
	records map[uint]model.TransactionRecord
	sets    int
}

func newFakeStore(records ...model.TransactionRecord) *fakeStore {
	s := &fakeStore{records: make(map[uint]model.TransactionRecord)}
	for _, r := range records {
		s.records[r.OrderID] = r
	}
	return s
}

func (s *fakeStore) Get(ctx context.Context, orderID uint) (*model.TransactionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[orderID]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (s *fakeStore) Set(ctx context.Context, orderID uint, statusCode, transactionRef string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sets++
	s.records[orderID] = model.TransactionRecord{OrderID: orderID, TransactionStatus: statusCode, TransactionNumber: transactionRef}
	return nil
}

type fakeGateway struct {
	settings *model.GatewaySettings

	result *model.GatewayOperationResult
	err    error

	captures []model.CaptureRequest
	cancels  []model.CancelRequest
	lookups  []model.AddressLookupRequest
}

func newFakeGateway(id string) *fakeGateway {
	return &fakeGateway{settings: &model.GatewaySettings{
		ID:            id,
		Enabled:       true,
		AccountNumber: "ACC-1",
		EncryptedKey:  "secret",
		TestMode:      true,
	}}
}

func (g *fakeGateway) Settings() *model.GatewaySettings { return g.settings }

func (g *fakeGateway) Capture(ctx context.Context, req model.CaptureRequest) (*model.GatewayOperationResult, error) {
	g.captures = append(g.captures, req)
	return g.result, g.err
}

func (g *fakeGateway) Cancel(ctx context.Context, req model.CancelRequest) (*model.GatewayOperationResult, error) {
	g.cancels = append(g.cancels, req)
	return g.result, g.err
}

func (g *fakeGateway) LookupAddress(ctx context.Context, req model.AddressLookupRequest) (*model.GatewayOperationResult, error) {
	g.lookups = append(g.lookups, req)
	return g.result, g.err
}

func (g *fakeGateway) calls() int {
	return len(g.captures) + len(g.cancels) + len(g.lookups)
}

type fakeFactoringGateway struct {
	*fakeGateway
	lines string
}

func (g *fakeFactoringGateway) OrderLines(order *model.Order) (string, error) {
	return g.lines, nil
}

type fakeResolver struct {
	gateways map[string]PaymentGatewayClient
}

func (r *fakeResolver) Resolve(ctx context.Context, paymentMethod string) (PaymentGatewayClient, error) {
	g, ok := r.gateways[paymentMethod]
	if !ok {
		return nil, errors.New("unknown payment method")
	}
	return g, nil
}

type fakeNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *fakeNotifier) ReportError(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}

type publishedEvent struct {
	Subject string
	Event   model.TransactionEvent
}

type fakePublisher struct {
	events []publishedEvent
}

func (p *fakePublisher) Publish(ctx context.Context, subject string, event model.TransactionEvent) error {
	p.events = append(p.events, publishedEvent{subject, event})
	return nil
}

type fakeLocker struct {
	held     map[string]bool
	acquired []string
	released []string
	ttl      time.Duration
}

func (l *fakeLocker) Lock(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	if l.held[key] {
		return nil, ErrOrderLocked
	}
	l.acquired = append(l.acquired, key)
	l.ttl = ttl
	return func() { l.released = append(l.released, key) }, nil
}

func okResult(status, number string) *model.GatewayOperationResult {
	return &model.GatewayOperationResult{
		Code:              "OK",
		Description:       "OK",
		ErrorCode:         "OK",
		TransactionStatus: status,
		TransactionNumber: number,
	}
}

func strPtr(s string) *string { return &s }
