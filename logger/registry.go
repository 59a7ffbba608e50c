package logger

import "sync"

// named holds loggers shared by name across packages, e.g. the
// application logger registered by bootstrap under the service name.
var named sync.Map // string -> *Logger

// Register makes l available through Get under name. A nil l removes the
// entry.
func Register(name string, l *Logger) {
	if l == nil {
		named.Delete(name)
		return
	}
	named.Store(name, l)
}

// Get returns the logger registered under name, or the global logger
// tagged with name as its component.
func Get(name string) *Logger {
	if v, ok := named.Load(name); ok {
		return v.(*Logger)
	}
	return GetGlobalLogger().WithComponent(name)
}
