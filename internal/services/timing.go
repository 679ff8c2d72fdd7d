package services

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// TrackTime logs how long a function took; use with defer:
//
//	defer TrackTime("Evaluate", time.Now())
func TrackTime(funcName string, start time.Time) {
	log.WithField("func", funcName).Debugf("took %d ms", time.Since(start).Milliseconds())
}
