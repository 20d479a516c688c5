package service

import "go.uber.org/zap"

var log = zap.NewNop()

// SetLogger routes service warnings, such as dropped meal items, to l.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	log = l
}
