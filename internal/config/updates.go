package config

import (
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

var (
	updateListenersLock sync.Mutex
	updateListeners     []func(event fsnotify.Event)
)

func RegisterForUpdates(f func(event fsnotify.Event)) {
	updateListenersLock.Lock()
	defer updateListenersLock.Unlock()

	updateListeners = append(updateListeners, f)
}

func notifyUpdateListeners(event fsnotify.Event) {
	log.Debug().Str("config_file", event.Name).Str("op", event.Op.String()).Msg("config file changed")

	updateListenersLock.Lock()
	listeners := make([]func(event fsnotify.Event), len(updateListeners))
	copy(listeners, updateListeners)
	updateListenersLock.Unlock()

	for _, curr := range listeners {
		curr(event)
	}
}
