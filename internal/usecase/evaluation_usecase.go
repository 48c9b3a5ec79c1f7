package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/fadilmartias/pitchdeck-analyzer/internal/backend"
	"github.com/fadilmartias/pitchdeck-analyzer/internal/batch"
	"github.com/fadilmartias/pitchdeck-analyzer/internal/logger"
	"github.com/fadilmartias/pitchdeck-analyzer/internal/model"
	"github.com/fadilmartias/pitchdeck-analyzer/internal/pipeline"
	"github.com/fadilmartias/pitchdeck-analyzer/internal/prompt"
	"github.com/fadilmartias/pitchdeck-analyzer/internal/response"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// ErrInvalidRequest marks submissions rejected before any work starts: an
// unknown backend or a missing credential.
var ErrInvalidRequest = errors.New("invalid evaluation request")

type TaskRepository interface {
	CreateTask(task *model.EvaluationTask) error
	UpdateTask(task *model.EvaluationTask) error
	FindTaskByID(id string) (*model.EvaluationTask, error)
	ListTasks(page, pageSize int) ([]model.EvaluationTask, int64, error)
}

type ResultStore interface {
	Save(record *model.ResultRecord) (string, error)
}

// PipelineFactory builds an evaluator for one backend/prompt combination.
type PipelineFactory func(ctx context.Context, cfg pipeline.Config) (batch.Evaluator, error)

type SubmitRequest struct {
	DocumentName    string
	DocumentPath    string
	ExtractionModel string
	EvaluationModel string
	PromptVersion   string
}

type EvaluationUsecase struct {
	evaluationRepo TaskRepository
	results        ResultStore
	newPipeline    PipelineFactory
	logger         *zap.Logger

	// pipelines are reused across tasks with the same configuration.
	pipelines   map[pipeline.Config]batch.Evaluator
	pipelinesMu sync.Mutex

	sem     *semaphore.Weighted
	wg      sync.WaitGroup
	baseCtx context.Context
}

func NewEvaluationUsecase(evaluationRepo TaskRepository, results ResultStore, newPipeline PipelineFactory, maxConcurrent int, log *zap.Logger) *EvaluationUsecase {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &EvaluationUsecase{
		evaluationRepo: evaluationRepo,
		results:        results,
		newPipeline:    newPipeline,
		logger:         logger.OrNop(log),
		pipelines:      map[pipeline.Config]batch.Evaluator{},
		sem:            semaphore.NewWeighted(int64(maxConcurrent)),
		baseCtx:        context.Background(),
	}
}

// DefaultPipelineFactory builds real pipelines that log through log.
func DefaultPipelineFactory(log *zap.Logger) PipelineFactory {
	return func(ctx context.Context, cfg pipeline.Config) (batch.Evaluator, error) {
		return pipeline.New(ctx, cfg, pipeline.WithLogger(log))
	}
}

// Submit validates the configuration, stores a processing task and evaluates
// the document in the background.
func (uc *EvaluationUsecase) Submit(ctx context.Context, req SubmitRequest) (*model.EvaluationTask, error) {
	cfg := pipeline.Config{
		ExtractionModel: req.ExtractionModel,
		EvaluationModel: req.EvaluationModel,
		PromptVersion:   req.PromptVersion,
	}
	ev, err := uc.pipelineFor(ctx, cfg)
	if err != nil {
		if errors.Is(err, pipeline.ErrUnknownBackend) || errors.Is(err, pipeline.ErrMissingCredential) {
			return nil, errors.Join(ErrInvalidRequest, err)
		}
		return nil, err
	}

	task := &model.EvaluationTask{
		DocumentName:    req.DocumentName,
		DocumentPath:    req.DocumentPath,
		ExtractionModel: orDefault(req.ExtractionModel, backend.DefaultName),
		EvaluationModel: orDefault(req.EvaluationModel, backend.DefaultName),
		PromptVersion:   prompt.Resolve(req.PromptVersion).Version(),
		Status:          model.TaskStatusProcessing,
		Result:          "{}",
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	if err := uc.evaluationRepo.CreateTask(task); err != nil {
		return nil, err
	}

	uc.wg.Add(1)
	go uc.evaluateTask(*task, ev)

	return task, nil
}

func (uc *EvaluationUsecase) pipelineFor(ctx context.Context, cfg pipeline.Config) (batch.Evaluator, error) {
	uc.pipelinesMu.Lock()
	defer uc.pipelinesMu.Unlock()

	if ev, ok := uc.pipelines[cfg]; ok {
		return ev, nil
	}
	ev, err := uc.newPipeline(ctx, cfg)
	if err != nil {
		return nil, err
	}
	uc.pipelines[cfg] = ev
	return ev, nil
}

func (uc *EvaluationUsecase) evaluateTask(task model.EvaluationTask, ev batch.Evaluator) {
	defer uc.wg.Done()
	log := uc.logger.With(zap.String("task_id", task.ID.String()), zap.String(logger.FieldDocument, task.DocumentName))

	if err := uc.sem.Acquire(uc.baseCtx, 1); err != nil {
		uc.fail(&task, err, log)
		return
	}
	defer uc.sem.Release(1)

	record, err := ev.Evaluate(uc.baseCtx, task.DocumentPath)
	if err != nil {
		uc.fail(&task, err, log)
		return
	}
	record.DocumentName = task.DocumentName

	result, err := json.Marshal(record)
	if err != nil {
		uc.fail(&task, err, log)
		return
	}

	if uc.results != nil {
		if path, err := uc.results.Save(record); err != nil {
			log.Warn("could not save result file", zap.Error(err))
		} else {
			log.Debug("result saved", zap.String("path", path))
		}
	}

	score := record.Score
	task.Status = model.TaskStatusCompleted
	task.Score = &score
	task.ScoreDescription = record.ScoreDescription
	task.Result = string(result)
	task.UpdatedAt = time.Now()
	if err := uc.evaluationRepo.UpdateTask(&task); err != nil {
		log.Error("could not update task", zap.Error(err))
		return
	}
	log.Info("task completed", zap.Int("score", score))
}

func (uc *EvaluationUsecase) fail(task *model.EvaluationTask, cause error, log *zap.Logger) {
	log.Error("task failed", zap.Error(cause))
	task.Status = model.TaskStatusFailed
	task.Error = cause.Error()
	task.UpdatedAt = time.Now()
	if err := uc.evaluationRepo.UpdateTask(task); err != nil {
		log.Error("could not update task", zap.Error(err))
	}
}

// Wait blocks until every background evaluation has finished.
func (uc *EvaluationUsecase) Wait() {
	uc.wg.Wait()
}

func (uc *EvaluationUsecase) GetResult(id string) (*model.EvaluationTask, error) {
	return uc.evaluationRepo.FindTaskByID(id)
}

func (uc *EvaluationUsecase) ListResults(page, pageSize int) ([]model.EvaluationTask, *response.Pagination, error) {
	page, pageSize = response.NormalizePage(page, pageSize)
	tasks, total, err := uc.evaluationRepo.ListTasks(page, pageSize)
	if err != nil {
		return nil, nil, err
	}
	return tasks, response.NewPagination(page, pageSize, len(tasks), total), nil
}

func (uc *EvaluationUsecase) ListModels() []backend.Backend {
	return backend.List()
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
