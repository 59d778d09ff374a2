package nakama

import (
	"context"

	"ludo/internal/ports"

	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"
)

// noopLogger implements runtime.Logger for tests that only need to satisfy the interface.
type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}
func (noopLogger) WithField(string, interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) WithFields(map[string]interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) Fields() map[string]interface{} {
	return nil
}

type sentMessage struct {
	opCode     int64
	data       []byte
	recipients []runtime.Presence
}

// mockDispatcher records match dispatcher calls for assertions.
type mockDispatcher struct {
	sent         []sentMessage
	labelUpdates int
	lastLabel    string
}

func (md *mockDispatcher) BroadcastMessage(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	md.sent = append(md.sent, sentMessage{
		opCode:     opCode,
		data:       append([]byte(nil), data...),
		recipients: presences,
	})
	return nil
}

func (md *mockDispatcher) BroadcastMessageDeferred(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	return nil
}

func (md *mockDispatcher) MatchKick(presences []runtime.Presence) error {
	return nil
}

func (md *mockDispatcher) MatchLabelUpdate(label string) error {
	md.labelUpdates++
	md.lastLabel = label
	return nil
}

// messages returns everything sent with opCode, in order.
func (md *mockDispatcher) messages(opCode int64) []sentMessage {
	var out []sentMessage
	for _, m := range md.sent {
		if m.opCode == opCode {
			out = append(out, m)
		}
	}
	return out
}

type mockPresence struct {
	userID   string
	username string
}

func (p mockPresence) GetHidden() bool                   { return false }
func (p mockPresence) GetPersistence() bool              { return false }
func (p mockPresence) GetUsername() string               { return p.username }
func (p mockPresence) GetStatus() string                 { return "" }
func (p mockPresence) GetReason() runtime.PresenceReason { return runtime.PresenceReasonUnknown }
func (p mockPresence) GetUserId() string                 { return p.userID }
func (p mockPresence) GetSessionId() string              { return "session-" + p.userID }
func (p mockPresence) GetNodeId() string                 { return "node-1" }

type mockMatchData struct {
	mockPresence
	opCode int64
	data   []byte
}

func (m mockMatchData) GetOpCode() int64      { return m.opCode }
func (m mockMatchData) GetData() []byte       { return m.data }
func (m mockMatchData) GetReliable() bool     { return true }
func (m mockMatchData) GetReceiveTime() int64 { return 0 }

type mockEconomy struct {
	updates []ports.WalletUpdate
	err     error
}

func (me *mockEconomy) GetBalance(ctx context.Context, userID string) (int64, error) {
	var total int64
	for _, u := range me.updates {
		if u.UserID == userID {
			total += u.Amount
		}
	}
	return total, nil
}

func (me *mockEconomy) UpdateBalances(ctx context.Context, updates []ports.WalletUpdate) error {
	if me.err != nil {
		return me.err
	}
	me.updates = append(me.updates, updates...)
	return nil
}

type walletCall struct {
	userID    string
	changeset map[string]int64
	metadata  map[string]interface{}
}

// fakeNakama overrides the few NakamaModule calls this package makes.
// Calling anything else panics on the nil embedded interface.
type fakeNakama struct {
	runtime.NakamaModule

	accounts    map[string]*api.Account
	walletErr   error
	walletCalls []walletCall

	matches     []*api.Match
	listQueries []string
	created     []string
}

func (f *fakeNakama) AccountGetId(ctx context.Context, userID string) (*api.Account, error) {
	if acc, ok := f.accounts[userID]; ok {
		return acc, nil
	}
	return &api.Account{}, nil
}

func (f *fakeNakama) WalletUpdate(ctx context.Context, userID string, changeset map[string]int64, metadata map[string]interface{}, updateLedger bool) (map[string]int64, map[string]int64, error) {
	if f.walletErr != nil {
		return nil, nil, f.walletErr
	}
	f.walletCalls = append(f.walletCalls, walletCall{userID: userID, changeset: changeset, metadata: metadata})
	return changeset, map[string]int64{}, nil
}

func (f *fakeNakama) MatchList(ctx context.Context, limit int, authoritative bool, label string, minSize, maxSize *int, query string) ([]*api.Match, error) {
	f.listQueries = append(f.listQueries, query)
	return f.matches, nil
}

func (f *fakeNakama) MatchCreate(ctx context.Context, module string, params map[string]interface{}) (string, error) {
	f.created = append(f.created, module)
	return "match-new", nil
}
