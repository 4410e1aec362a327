// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"medcare/internal/domain/repository"
	"medcare/internal/errors"

	"gorm.io/gorm"
)

// gormTransactionManager implements the domain's TransactionManager interface using GORM.
type gormTransactionManager struct {
	db *gorm.DB
}

// gormRepositoryFactory implements the domain's RepositoryFactory interface,
// handing out repositories bound to one specific transaction.
type gormRepositoryFactory struct {
	tx *gorm.DB
}

// NewUserRepository creates a new user repository instance bound to the transaction.
func (f *gormRepositoryFactory) NewUserRepository() repository.UserRepository {
	return NewUserRepository(f.tx)
}

// NewAppointmentRepository creates a new appointment repository instance bound to the transaction.
func (f *gormRepositoryFactory) NewAppointmentRepository() repository.AppointmentRepository {
	return NewAppointmentRepository(f.tx)
}

// NewMedicalRecordRepository creates a new medical record repository instance bound to the transaction.
func (f *gormRepositoryFactory) NewMedicalRecordRepository() repository.MedicalRecordRepository {
	return NewMedicalRecordRepository(f.tx)
}

// NewDiagnosisRepository creates a new diagnosis repository instance bound to the transaction.
func (f *gormRepositoryFactory) NewDiagnosisRepository() repository.DiagnosisRepository {
	return NewDiagnosisRepository(f.tx)
}

// NewTransactionManager is the constructor for gormTransactionManager.
// This function will be used as an Fx provider.
func NewTransactionManager(db *gorm.DB) repository.TransactionManager {
	return &gormTransactionManager{db: db}
}

// Execute runs fn inside a single database transaction. The factory handed
// to fn builds repositories bound to that transaction; any error from fn
// rolls the whole transaction back.
func (tm *gormTransactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	tx := tm.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return errors.Wrap(tx.Error, "failed to begin transaction")
	}

	// A panic inside fn must not leak an open transaction.
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(&gormRepositoryFactory{tx: tx}); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			// The business error stays the cause; the rollback failure is noted.
			return errors.Wrapf(err, "transaction rollback failed: %v", rbErr)
		}

		return err
	}

	if err := tx.Commit().Error; err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}

	return nil
}
