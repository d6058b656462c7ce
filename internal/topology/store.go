package topology

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/kakao/chward/pkg/util/fputil"
)

const (
	// MetadataFileName is the name of the topology record. It always lives
	// directly below the deployment directory.
	MetadataFileName = "clickward-metadata.json"

	metadataFileMode = os.FileMode(0644)
)

// Store persists a Topology as a JSON record in the deployment directory.
type Store struct {
	dir    string
	logger *zap.Logger
}

// NewStore returns a store for the deployment directory dir. It does not
// touch the filesystem.
func NewStore(dir string, opts ...StoreOption) *Store {
	s := &Store{
		dir:    dir,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type StoreOption func(*Store)

func WithStoreLogger(logger *zap.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// Path returns the path of the topology record.
func (s *Store) Path() string {
	return filepath.Join(s.dir, MetadataFileName)
}

// Load reads the topology record. It returns an error wrapping ErrNotFound if
// no record exists, and one wrapping ErrCorrupt if the record cannot be
// decoded or breaks the watermark invariant.
func (s *Store) Load() (*Topology, error) {
	path := s.Path()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrapf(ErrNotFound, "no deployment found at %s: is your path correct?", s.dir)
		}
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	t := &Topology{}
	if err := json.Unmarshal(data, t); err != nil {
		return nil, errors.Wrapf(ErrCorrupt, "%s: %v", path, err)
	}
	if err := t.Validate(); err != nil {
		return nil, errors.Wrapf(ErrCorrupt, "%s: %v", path, err)
	}
	return t, nil
}

// Save writes the topology record atomically. It is not transactional with
// anything else: a crash right after Save leaves running processes and the
// record out of sync.
func (s *Store) Save(t *Topology) error {
	if err := t.Validate(); err != nil {
		return errors.WithMessage(err, "topology: refuse to save")
	}
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}
	path := s.Path()
	if err := fputil.WriteFileAtomic(path, data, metadataFileMode); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	s.logger.Debug("saved topology",
		zap.String("path", path),
		zap.Any("keepers", t.keeperIDs),
		zap.Int32("max_keeper_id", int32(t.maxKeeperID)),
		zap.Any("servers", t.serverIDs),
		zap.Int32("max_server_id", int32(t.maxServerID)),
	)
	return nil
}
