package foldersize

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/charlievieth/fastwalk"
	"github.com/sirupsen/logrus"
)

// Options configures a Compute call.
type Options struct {
	// Logger receives walk errors and debug output. Nil means the logrus standard logger.
	Logger logrus.FieldLogger
}

func (o Options) logger() logrus.FieldLogger {
	if o.Logger == nil {
		return logrus.StandardLogger()
	}

	return o.Logger
}

// Compute returns one Entry per immediate child of root, in directory order.
//
// Regular files report their own size, directories the total size of all
// regular files beneath them, and everything else (symlinks, devices, ...) 0.
// Errors while reading root or walking a subtree are logged and skipped, so
// a root that cannot be read yields an empty result.
//
// The returned error is non-nil only if ctx is cancelled before the scan completes.
func Compute(ctx context.Context, root string, opt Options) ([]Entry, error) {
	log := opt.logger()

	dirEntries, err := os.ReadDir(root)
	if err != nil {
		log.WithField("path", root).WithError(err).Warn("reading directory")

		return []Entry{}, nil
	}

	entries := make([]Entry, 0, len(dirEntries))

	//nolint:varnamelen // d is standard for DirEntry
	for _, d := range dirEntries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		path := filepath.Join(root, d.Name())

		var size int64

		switch {
		case d.Type().IsRegular():
			info, err := d.Info()
			if err != nil {
				log.WithField("path", path).WithError(err).Warn("reading file info")

				break
			}

			size = info.Size()
		case d.IsDir():
			size, err = subtreeSize(ctx, path, log)
			if err != nil {
				return nil, err
			}
		default:
			log.Debugf("not a regular file or directory, counting as 0: %s", path)
		}

		log.Debugf("%s: %d bytes", path, size)

		entries = append(entries, Entry{Name: d.Name(), Size: size})
	}

	return entries, nil
}

// subtreeSize sums the sizes of all regular files beneath dir.
func subtreeSize(ctx context.Context, dir string, log logrus.FieldLogger) (int64, error) {
	// The callback runs on fastwalk's worker goroutine, not the caller's.
	var total atomic.Int64

	// One worker: directories are read one at a time. Symlinks are reported
	// as entries and never followed.
	conf := &fastwalk.Config{
		Follow:     false,
		NumWorkers: 1,
	}

	//nolint:varnamelen // d is standard for DirEntry
	walkErr := fastwalk.Walk(conf, dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.WithField("path", path).WithError(err).Warn("walking directory")

			return nil
		}

		select {
		case <-ctx.Done():
			return context.Canceled
		default:
		}

		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			log.WithField("path", path).WithError(err).Warn("reading file info")

			return nil //nolint:nilerr // Intentionally skip errors during walk
		}

		total.Add(info.Size())

		return nil
	})
	if walkErr != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, ctxErr
		}

		log.WithField("path", dir).WithError(walkErr).Warn("walking directory")
	}

	return total.Load(), nil
}
