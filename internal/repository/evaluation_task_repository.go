package repository

import (
	"github.com/fadilmartias/pitchdeck-analyzer/internal/model"
	"gorm.io/gorm"
)

type EvaluationRepository struct {
	db *gorm.DB
}

func NewEvaluationRepository(db *gorm.DB) *EvaluationRepository {
	return &EvaluationRepository{db}
}

func (r *EvaluationRepository) CreateTask(task *model.EvaluationTask) error {
	return r.db.Create(task).Error
}

func (r *EvaluationRepository) UpdateTask(task *model.EvaluationTask) error {
	return r.db.Save(task).Error
}

func (r *EvaluationRepository) FindTaskByID(id string) (*model.EvaluationTask, error) {
	var task model.EvaluationTask
	err := r.db.First(&task, "id = ?", id).Error
	return &task, err
}

// ListTasks returns one page of tasks, newest first, and the total count.
func (r *EvaluationRepository) ListTasks(page, pageSize int) ([]model.EvaluationTask, int64, error) {
	var total int64
	if err := r.db.Model(&model.EvaluationTask{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tasks []model.EvaluationTask
	err := r.db.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&tasks).Error
	return tasks, total, err
}
