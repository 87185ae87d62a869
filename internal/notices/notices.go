package notices

import (
	"sort"
	"sync"
)

var (
	noticesLock sync.RWMutex
	notices     = map[string]string{}
)

// AddMessage records an advisory message under id. The first message for an
// id wins; later calls with the same id are ignored until it is deleted.
func AddMessage(id string, message string) {
	noticesLock.Lock()
	defer noticesLock.Unlock()

	if _, exists := notices[id]; exists {
		return
	}

	notices[id] = message
}

func DeleteMessage(id string) {
	noticesLock.Lock()
	defer noticesLock.Unlock()

	delete(notices, id)
}

// GetMessages returns pending messages ordered by id so the console shows
// them in a stable order.
func GetMessages() []string {
	noticesLock.RLock()
	defer noticesLock.RUnlock()

	ids := make([]string, 0, len(notices))
	for id := range notices {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	ret := make([]string, len(ids))
	for i, id := range ids {
		ret[i] = notices[id]
	}

	return ret
}

func Reset() {
	noticesLock.Lock()
	defer noticesLock.Unlock()

	notices = map[string]string{}
}
