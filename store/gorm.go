package store

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/threefoldtech/tfgrid-sdk-go/grid-workloads/codec"
	"github.com/threefoldtech/tfgrid-sdk-go/grid-workloads/zos"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// WorkloadRecord is the table row of a stored workload
type WorkloadRecord struct {
	NodeID     string `gorm:"primaryKey"`
	WorkloadID int64  `gorm:"primaryKey;autoIncrement:false"`
	Version    int64  `gorm:"not null"`
	Type       string `gorm:"index"`
	Data       []byte `gorm:"not null"`
	UpdatedAt  time.Time
}

// TableName overrides the gorm table name
func (WorkloadRecord) TableName() string {
	return "workloads"
}

// GormStore implements Store on a sql database
type GormStore struct {
	gormDB *gorm.DB
}

var _ Store = (*GormStore)(nil)

// NewGormStore creates a store on an open gorm connection and migrates its table
func NewGormStore(gormDB *gorm.DB) (*GormStore, error) {
	if err := gormDB.AutoMigrate(&WorkloadRecord{}); err != nil {
		return nil, errors.Wrap(err, "failed to auto migrate DB")
	}
	return &GormStore{gormDB: gormDB}, nil
}

// OpenPostgres opens a postgres backed store
func OpenPostgres(dsn string) (*GormStore, error) {
	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create orm wrapper around db")
	}
	return NewGormStore(gormDB)
}

// OpenSQLite opens a sqlite backed store, dsn can be a file path or ":memory:"
func OpenSQLite(dsn string) (*GormStore, error) {
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sqlite database")
	}

	// sqlite allows a single writer
	sql, err := gormDB.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to configure DB connection")
	}
	sql.SetMaxOpenConns(1)

	return NewGormStore(gormDB)
}

// Put implements Store. The version condition is part of the update so
// concurrent writers can not both succeed.
func (s *GormStore) Put(ctx context.Context, wl zos.Workload) error {
	data, err := codec.Encode(wl)
	if err != nil {
		return err
	}

	record := WorkloadRecord{
		NodeID:     wl.NodeID,
		WorkloadID: wl.WorkloadID,
		Version:    wl.Version,
		Type:       wl.Type().String(),
		Data:       data,
		UpdatedAt:  time.Now(),
	}

	return s.gormDB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&WorkloadRecord{}).
			Where("node_id = ? AND workload_id = ? AND version < ?", wl.NodeID, wl.WorkloadID, wl.Version).
			Updates(map[string]interface{}{
				"version":    record.Version,
				"type":       record.Type,
				"data":       record.Data,
				"updated_at": record.UpdatedAt,
			})
		if res.Error != nil {
			return errors.Wrap(res.Error, "failed to update workload")
		}
		if res.RowsAffected > 0 {
			return nil
		}

		var stored WorkloadRecord
		err := tx.Select("version").
			Where("node_id = ? AND workload_id = ?", wl.NodeID, wl.WorkloadID).
			Take(&stored).Error
		if err == nil {
			return conflict(stored.Version, wl.Version)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.Wrap(err, "failed to get stored version")
		}

		res = tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&record)
		if res.Error != nil {
			return errors.Wrap(res.Error, "failed to create workload")
		}
		if res.RowsAffected == 0 {
			return conflict(wl.Version, wl.Version)
		}
		return nil
	})
}

// Get implements Store
func (s *GormStore) Get(ctx context.Context, nodeID string, workloadID int64) (zos.Workload, error) {
	var record WorkloadRecord
	err := s.gormDB.WithContext(ctx).
		Where("node_id = ? AND workload_id = ?", nodeID, workloadID).
		Take(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return zos.Workload{}, notFound(nodeID, workloadID)
	} else if err != nil {
		return zos.Workload{}, errors.Wrap(err, "failed to get workload")
	}

	return decode(record.Data)
}

// List implements Store
func (s *GormStore) List(ctx context.Context, nodeID string) ([]zos.Workload, error) {
	var records []WorkloadRecord
	err := s.gormDB.WithContext(ctx).
		Where("node_id = ?", nodeID).
		Order("workload_id").
		Find(&records).Error
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list workloads of node '%s'", nodeID)
	}

	workloads := make([]zos.Workload, 0, len(records))
	for _, record := range records {
		wl, err := decode(record.Data)
		if err != nil {
			return nil, err
		}
		workloads = append(workloads, wl)
	}
	return workloads, nil
}

// Delete implements Store
func (s *GormStore) Delete(ctx context.Context, nodeID string, workloadID int64) error {
	res := s.gormDB.WithContext(ctx).
		Where("node_id = ? AND workload_id = ?", nodeID, workloadID).
		Delete(&WorkloadRecord{})
	if res.Error != nil {
		return errors.Wrap(res.Error, "failed to delete workload")
	}
	if res.RowsAffected == 0 {
		return notFound(nodeID, workloadID)
	}
	return nil
}

// Close closes the underlying database connection
func (s *GormStore) Close() error {
	sql, err := s.gormDB.DB()
	if err != nil {
		return err
	}
	return sql.Close()
}
