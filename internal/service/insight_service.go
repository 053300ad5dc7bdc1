package service

import (
    "context"
    "encoding/json"
    "fmt"
    "time"

    "go.uber.org/zap"

    "github.com/vinverse/gamerlink/internal/model"
    "github.com/vinverse/gamerlink/internal/repository"
    "github.com/vinverse/gamerlink/pkg/logger"
)

type insightJob struct {
    insightID string
    userID    string
    enqAt     time.Time
}

// InsightService 战报生成：入队立即返回句柄，worker 异步落地
type InsightService interface {
    // Enqueue 幂等：同一 (user, tournament) 已有已完成战报时直接返回
    Enqueue(ctx context.Context, userID, tournamentID string) (*model.MatchInsight, error)
    Get(ctx context.Context, id string) (*model.MatchInsight, error)
    ListByUser(ctx context.Context, userID string) ([]*model.MatchInsight, error)
}

// InsightWorker 本地异步执行器（与主请求解耦）
type InsightWorker struct {
    insightRepo repository.InsightRepository
    userRepo    repository.UserRepository
    ch          chan insightJob
}

func NewInsightWorker(insightRepo repository.InsightRepository, userRepo repository.UserRepository, queueSize int) *InsightWorker {
    if queueSize <= 0 {
        queueSize = 10000
    }
    return &InsightWorker{insightRepo: insightRepo, userRepo: userRepo, ch: make(chan insightJob, queueSize)}
}

// Start 启动若干 worker；返回停止函数。
func (w *InsightWorker) Start(workers int) func(context.Context) error {
    if workers <= 0 {
        workers = 2
    }
    stopCh := make(chan struct{})
    for i := 0; i < workers; i++ {
        go func() {
            for {
                select {
                case job := <-w.ch:
                    ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
                    w.process(ctx, job)
                    cancel()
                case <-stopCh:
                    return
                }
            }
        }()
    }
    return func(ctx context.Context) error {
        close(stopCh)
        // 等待队列自然排空一小段时间
        timeout := time.After(2 * time.Second)
        for {
            select {
            case <-timeout:
                return nil
            default:
                if len(w.ch) == 0 {
                    return nil
                }
                time.Sleep(50 * time.Millisecond)
            }
        }
    }
}

func (w *InsightWorker) process(ctx context.Context, job insightJob) {
    if err := w.insightRepo.MarkProcessing(ctx, job.insightID); err != nil {
        logger.Warn("insight mark processing failed", zap.String("insight", job.insightID), zap.Error(err))
        return
    }
    user, err := w.userRepo.GetByID(ctx, job.userID)
    if err != nil {
        _ = w.insightRepo.Fail(ctx, job.insightID, err.Error())
        return
    }
    summary, err := buildSummary(user)
    if err != nil {
        _ = w.insightRepo.Fail(ctx, job.insightID, err.Error())
        return
    }
    if err := w.insightRepo.Complete(ctx, job.insightID, summary); err != nil {
        logger.Warn("insight complete failed", zap.String("insight", job.insightID), zap.Error(err))
    }
}

// buildSummary 生成模板化战报。接外部文本生成服务时只需替换这里。
func buildSummary(user *model.User) (string, error) {
    rank := user.Rank
    if rank == "" {
        rank = "Unranked"
    }
    data := map[string]string{
        "assessment":   fmt.Sprintf("%s participated in the tournament. Good effort overall.", user.Username),
        "improvements": "Focus on team coordination and map awareness.",
        "highlights":   fmt.Sprintf("Competed at rank %s as %s.", rank, user.GamerTag),
    }
    raw, err := json.Marshal(data)
    if err != nil {
        return "", err
    }
    return string(raw), nil
}

func (w *InsightWorker) enqueue(job insightJob) {
    select {
    case w.ch <- job:
    default:
        logger.Warn("insight queue full, drop job", zap.String("insight", job.insightID))
    }
}

// QueueLen 返回当前队列长度（采样值）。
func (w *InsightWorker) QueueLen() int { return len(w.ch) }

type insightService struct {
    insightRepo repository.InsightRepository
    worker      *InsightWorker
}

func NewInsightService(insightRepo repository.InsightRepository, worker *InsightWorker) InsightService {
    return &insightService{insightRepo: insightRepo, worker: worker}
}

func (s *insightService) Enqueue(ctx context.Context, userID, tournamentID string) (*model.MatchInsight, error) {
    insight, created, err := s.insightRepo.GetOrCreate(ctx, userID, tournamentID)
    if err != nil {
        return nil, err
    }
    // 已完成的不重复生成；pending/failed 的重新入队
    if created || insight.Status == model.InsightStatusPending || insight.Status == model.InsightStatusFailed {
        s.worker.enqueue(insightJob{insightID: insight.ID, userID: userID, enqAt: time.Now()})
    }
    return insight, nil
}

func (s *insightService) Get(ctx context.Context, id string) (*model.MatchInsight, error) {
    insight, err := s.insightRepo.GetByID(ctx, id)
    if err != nil {
        return nil, asNotFound(err, "insight")
    }
    return insight, nil
}

func (s *insightService) ListByUser(ctx context.Context, userID string) ([]*model.MatchInsight, error) {
    return s.insightRepo.ListByUser(ctx, userID)
}
