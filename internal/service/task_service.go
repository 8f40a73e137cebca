package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"chronotask/internal/cache"
	apperrors "chronotask/internal/errors"
	"chronotask/internal/model"
	"chronotask/internal/repository"
)

const taskCacheTTL = 5 * time.Minute

// TaskUpdate carries the optional fields of a partial task update.
type TaskUpdate struct {
	Name *string
	Tag  *string
	Time *string
}

// TaskService exposes task CRUD scoped to the authenticated owner. Every
// by-id operation verifies ownership and answers ErrTaskNotFound for foreign
// tasks, so existence is not leaked across users.
type TaskService interface {
	Create(ctx context.Context, userID uint, task *model.Task) (*model.Task, error)
	Get(ctx context.Context, userID, taskID uint) (*model.Task, error)
	Update(ctx context.Context, userID, taskID uint, update TaskUpdate) (*model.Task, error)
	Delete(ctx context.Context, userID, taskID uint) error
}

type taskService struct {
	repo  repository.TaskRepository
	cache *cache.Client
}

// NewTaskService builds a TaskService with repository and cache.
func NewTaskService(repo repository.TaskRepository, cache *cache.Client) TaskService {
	return &taskService{repo: repo, cache: cache}
}

func (s *taskService) cacheKey(id uint) string {
	return fmt.Sprintf("task:%d", id)
}

func (s *taskService) Create(ctx context.Context, userID uint, task *model.Task) (*model.Task, error) {
	task.UserID = userID
	if task.Time == "" {
		task.Time = model.DefaultTaskTime
	}
	if task.Date.IsZero() {
		task.Date = time.Now()
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrTaskNotCreated, err)
	}
	return task, nil
}

func (s *taskService) Get(ctx context.Context, userID, taskID uint) (*model.Task, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(taskID)); data != nil {
		var cached model.Task
		if err := json.Unmarshal(data, &cached); err == nil {
			return s.owned(&cached, userID)
		}
	}

	task, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		return nil, apperrors.ErrTaskNotFound
	}

	if payload, err := json.Marshal(task); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(taskID), payload, taskCacheTTL)
	}
	return s.owned(task, userID)
}

func (s *taskService) Update(ctx context.Context, userID, taskID uint, update TaskUpdate) (*model.Task, error) {
	task, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		return nil, apperrors.ErrTaskNotFound
	}
	if _, err := s.owned(task, userID); err != nil {
		return nil, err
	}

	if update.Name != nil {
		task.Name = *update.Name
	}
	if update.Tag != nil {
		task.Tag = *update.Tag
	}
	if update.Time != nil {
		task.Time = *update.Time
	}

	if err := s.repo.Save(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(taskID))
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, userID, taskID uint) error {
	task, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		return apperrors.ErrTaskNotFound
	}
	if _, err := s.owned(task, userID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, taskID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(taskID))
	return nil
}

func (s *taskService) owned(task *model.Task, userID uint) (*model.Task, error) {
	if task.UserID != userID {
		return nil, apperrors.ErrTaskNotFound
	}
	return task, nil
}
