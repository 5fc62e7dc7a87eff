package services

import (
	"fmt"

	"signage_server/internal/models"

	"gorm.io/gorm"
)

// PositionService maintains the dense, gap-free global rank over banners.
// Every mutation runs inside the caller's transaction so a multi-row shift
// and the target write are applied as one atomic unit.
type PositionService struct{}

// NewPositionService creates a new position service
func NewPositionService() *PositionService {
	return &PositionService{}
}

// NextPosition returns the rank for a banner appended at the end of the
// rotation: max(position)+1, or 0 when no banners exist.
func (ps *PositionService) NextPosition(tx *gorm.DB) (int, error) {
	var next int
	err := tx.Model(&models.Banner{}).
		Select("COALESCE(MAX(position), -1) + 1").
		Scan(&next).Error
	if err != nil {
		return 0, err
	}
	return next, nil
}

// shiftRange computes the closed position range [lo, hi] displaced by a
// move and the delta applied to it. ok is false when no shift is needed.
// Moving up (newPos < oldPos) pushes [newPos, oldPos-1] down by one;
// moving down pushes (oldPos, newPos] up by one. Rows outside the range
// are untouched.
func shiftRange(oldPos, newPos int) (lo, hi, delta int, ok bool) {
	switch {
	case newPos < oldPos:
		return newPos, oldPos - 1, 1, true
	case newPos > oldPos:
		return oldPos + 1, newPos, -1, true
	default:
		return 0, 0, 0, false
	}
}

// Move reranks banner id from oldPos to newPos, shifting only the rows
// strictly between the two ranks. newPos outside [0, count-1] is rejected
// before any write.
func (ps *PositionService) Move(tx *gorm.DB, id uint, oldPos, newPos int) error {
	var count int64
	if err := tx.Model(&models.Banner{}).Count(&count).Error; err != nil {
		return err
	}
	if newPos < 0 || newPos >= int(count) {
		return fmt.Errorf("%w: position %d outside range [0, %d]", ErrInvalidInput, newPos, count-1)
	}

	lo, hi, delta, ok := shiftRange(oldPos, newPos)
	if !ok {
		return nil
	}

	err := tx.Model(&models.Banner{}).
		Where("position >= ? AND position <= ? AND id != ?", lo, hi, id).
		UpdateColumn("position", gorm.Expr("position + ?", delta)).Error
	if err != nil {
		return err
	}

	return tx.Model(&models.Banner{}).
		Where("id = ?", id).
		UpdateColumn("position", newPos).Error
}

// Compact closes the gap left by a deleted banner by pulling every row
// ranked after it up by one.
func (ps *PositionService) Compact(tx *gorm.DB, removedPos int) error {
	return tx.Model(&models.Banner{}).
		Where("position > ?", removedPos).
		UpdateColumn("position", gorm.Expr("position - 1")).Error
}
