//go:build !rawdatadebug

package video

import "github.com/sirupsen/logrus"

func reportUseAfterRelease(op string) {
	logrus.WithFields(logrus.Fields{
		"function": op,
	}).Debug("Planar frame used after release")
}

func reportDoubleRelease() {
	logrus.WithFields(logrus.Fields{
		"function": "Release",
	}).Warn("Planar frame released twice")
}
