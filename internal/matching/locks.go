package matching

import "sync"

// keyedMutex serializes read-modify-write sequences per record key. Entries
// are dropped once no goroutine holds or waits on them.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	sync.Mutex
	refs int
}

// Lock blocks until key is free and returns the matching unlock.
func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*keyLock)
	}
	l, ok := k.locks[key]
	if !ok {
		l = &keyLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}

func applyKey(jobID, seekerID string) string { return "apply/" + jobID + "/" + seekerID }
func applicationKey(id string) string        { return "application/" + id }
func candidateKey(id string) string          { return "candidate/" + id }
func jobKey(id string) string                { return "job/" + id }
