package lspk

import (
	"io"

	"github.com/sirupsen/logrus"
)

// fieldLogger is the minimal logging surface the package needs; it is
// satisfied by *logrus.Logger and *logrus.Entry alike, so callers can pass
// either a bare logger or one pre-populated with fields (request ID, path,
// ...).
type fieldLogger interface {
	WithField(key string, value interface{}) *logrus.Entry
}

// discardLogger is used whenever a caller does not supply one, so the
// library never writes to stdout/stderr on its own.
func discardLogger() fieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func orDiscard(l fieldLogger) fieldLogger {
	if l == nil {
		return discardLogger()
	}
	return l
}

// warnUntestedVersion emits the single diagnostic spec mandates for the
// V15/V16 reader path: these formats are structurally identical to V18
// apart from entry size and have never been observed in a production
// archive.
func warnUntestedVersion(log fieldLogger, version int) {
	log.WithField("version", version).Warn("lspk: reading untested archive format version")
}
