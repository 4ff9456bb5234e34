package nakama

import (
	"context"
	"strconv"
	"sync"

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

type storedObject struct {
	value   string
	version string
}

// fakeNakama stands in for the server: storage with version checks and a
// notification outbox. Calling any other NakamaModule method panics.
type fakeNakama struct {
	runtime.NakamaModule

	mu      sync.Mutex
	objects map[string]storedObject
	seq     int
	sent    []*runtime.NotificationSend
	sendErr error
}

func newFakeNakama() *fakeNakama {
	return &fakeNakama{objects: map[string]storedObject{}}
}

func (f *fakeNakama) StorageRead(ctx context.Context, reads []*runtime.StorageRead) ([]*api.StorageObject, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*api.StorageObject
	for _, r := range reads {
		obj, ok := f.objects[r.Collection+"/"+r.Key]
		if !ok {
			continue
		}
		out = append(out, &api.StorageObject{
			Collection: r.Collection,
			Key:        r.Key,
			Value:      obj.value,
			Version:    obj.version,
		})
	}
	return out, nil
}

func (f *fakeNakama) StorageWrite(ctx context.Context, writes []*runtime.StorageWrite) ([]*api.StorageObjectAck, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, w := range writes {
		existing, ok := f.objects[w.Collection+"/"+w.Key]
		switch {
		case w.Version == "*" && ok:
			return nil, runtime.ErrStorageRejectedVersion
		case w.Version != "" && w.Version != "*" && (!ok || existing.version != w.Version):
			return nil, runtime.ErrStorageRejectedVersion
		}
	}
	acks := make([]*api.StorageObjectAck, 0, len(writes))
	for _, w := range writes {
		f.seq++
		version := "v" + strconv.Itoa(f.seq)
		f.objects[w.Collection+"/"+w.Key] = storedObject{value: w.Value, version: version}
		acks = append(acks, &api.StorageObjectAck{Collection: w.Collection, Key: w.Key, Version: version})
	}
	return acks, nil
}

func (f *fakeNakama) NotificationsSend(ctx context.Context, notifications []*runtime.NotificationSend) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, notifications...)
	return nil
}

func (f *fakeNakama) sentTo(userID string) []*runtime.NotificationSend {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*runtime.NotificationSend
	for _, n := range f.sent {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

func userCtx(userID string) context.Context {
	return context.WithValue(context.Background(), runtime.RUNTIME_CTX_USER_ID, userID)
}
