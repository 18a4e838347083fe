package impl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tomo4k1/tamenchan-bootcamp/common/log"
	"github.com/tomo4k1/tamenchan-bootcamp/core/domain/entity"
	"github.com/tomo4k1/tamenchan-bootcamp/core/domain/repository"
	"github.com/tomo4k1/tamenchan-bootcamp/core/domain/vo"
	"github.com/tomo4k1/tamenchan-bootcamp/runtime/game/engines/chinitsu"
	"github.com/tomo4k1/tamenchan-bootcamp/runtime/trainer/application/service"
)

const (
	defaultRecentLimit = 20
	maxRecentLimit     = 100
)

// Options 出题默认值
type Options struct {
	DefaultLength     int
	DefaultDifficulty vo.Difficulty
	ProblemTTL        time.Duration
	PoolKeys          []repository.PoolKey // 统计时展示的题库
}

type TrainerServiceImpl struct {
	problems  repository.ProblemRepository
	pool      repository.ProblemPoolRepository
	attempts  repository.AttemptRepository
	generator *chinitsu.Generator
	searcher  *chinitsu.Searcher
	opts      Options
}

func NewTrainerService(
	problems repository.ProblemRepository,
	pool repository.ProblemPoolRepository,
	attempts repository.AttemptRepository,
	generator *chinitsu.Generator,
	searcher *chinitsu.Searcher,
	opts Options,
) service.TrainerService {
	if opts.DefaultLength == 0 {
		opts.DefaultLength = chinitsu.DefaultLength
	}
	if !opts.DefaultDifficulty.Valid() {
		opts.DefaultDifficulty = vo.DefaultDifficulty
	}
	if searcher == nil {
		searcher = chinitsu.NewSearcher(nil)
	}
	if generator == nil {
		generator = chinitsu.NewGenerator(&chinitsu.Options{Waits: searcher.Waits})
	}
	return &TrainerServiceImpl{
		problems:  problems,
		pool:      pool,
		attempts:  attempts,
		generator: generator,
		searcher:  searcher,
		opts:      opts,
	}
}

func (s *TrainerServiceImpl) IssueProblem(ctx context.Context, req *service.IssueProblemReq) (*service.IssueProblemResp, error) {
	length := req.Length
	if length == 0 {
		length = s.opts.DefaultLength
	}
	if err := chinitsu.ValidateProblemLength(length); err != nil {
		return nil, err
	}
	difficulty := vo.Difficulty(req.Difficulty)
	if req.Difficulty == 0 {
		difficulty = s.opts.DefaultDifficulty
	}
	if !difficulty.Valid() {
		return nil, fmt.Errorf("%w: %d", service.ErrInvalidDifficulty, req.Difficulty)
	}

	hand, waits, fromPool, err := s.takeProblem(ctx, length, difficulty)
	if err != nil {
		return nil, err
	}

	problem := entity.NewIssuedProblem(hand, waits, int(difficulty))
	if err := s.problems.Save(ctx, problem, s.opts.ProblemTTL); err != nil {
		log.Error("保存题目失败, problemID=%s, err=%v", problem.ID, err)
		return nil, err
	}
	log.Debug("出题成功, problemID=%s, hand=%s, difficulty=%s, fromPool=%v",
		problem.ID, chinitsu.FormatHand(hand), difficulty, fromPool)

	resp := &service.IssueProblemResp{
		ID:              problem.ID,
		Hand:            problem.Hand,
		Glyphs:          chinitsu.RenderHand(problem.Hand),
		Length:          problem.Length,
		Difficulty:      int(difficulty),
		DifficultyLabel: difficulty.Label(),
		FromPool:        fromPool,
		Message:         chinitsu.MessageStart,
	}
	if req.Reveal {
		resp.Waits = problem.Waits
	}
	return resp, nil
}

// takeProblem 题库有货就直接用，否则现场生成
func (s *TrainerServiceImpl) takeProblem(ctx context.Context, length int, difficulty vo.Difficulty) ([]int, []int, bool, error) {
	if s.pool != nil {
		key := repository.PoolKey{Length: length, Difficulty: int(difficulty)}
		pooled, err := s.pool.Pop(ctx, key)
		switch {
		case err == nil && len(pooled.Hand) == length && len(pooled.Waits) >= difficulty.MinWaits():
			return pooled.Hand, pooled.Waits, true, nil
		case err == nil:
			log.Warn("题库中的题目不符合要求，丢弃, key=%+v, hand=%v", key, pooled.Hand)
		case !errors.Is(err, repository.ErrPoolEmpty):
			log.Warn("从题库取题失败，改为现场生成, key=%+v, err=%v", key, err)
		}
	}

	problem, err := s.generator.Generate(length, difficulty.MinWaits())
	if err != nil {
		log.Warn("现场出题失败, length=%d, difficulty=%s, err=%v", length, difficulty, err)
		return nil, nil, false, err
	}
	return problem.Hand, problem.Waits, false, nil
}

func (s *TrainerServiceImpl) SubmitAnswer(ctx context.Context, req *service.SubmitAnswerReq) (*service.SubmitAnswerResp, error) {
	if req.ProblemID == "" {
		return nil, fmt.Errorf("%w: problem id is required", service.ErrInvalidHand)
	}
	if err := chinitsu.ValidateTiles(req.Waits); err != nil {
		return nil, fmt.Errorf("%w: %v", service.ErrInvalidHand, err)
	}

	problem, err := s.problems.Find(ctx, req.ProblemID)
	if err != nil {
		return nil, err
	}
	if problem.Answered {
		return nil, repository.ErrProblemAnswered
	}

	result := chinitsu.CheckAnswer(req.Waits, problem.Waits)

	// 并发提交时以 MarkAnswered 为准
	if err := s.problems.MarkAnswered(ctx, problem.ID); err != nil {
		return nil, err
	}

	attempt := entity.NewAttempt(problem, result.SelectedWaits, result.CorrectWaits, result.IsCorrect)
	attempt.ClientIP = req.ClientIP
	if err := s.attempts.Save(ctx, attempt); err != nil {
		// 判定结果已经确定，记录失败不影响返回
		log.Error("保存作答记录失败, problemID=%s, err=%v", problem.ID, err)
	}

	return &service.SubmitAnswerResp{
		Result:       result,
		ProblemID:    problem.ID,
		Hand:         problem.Hand,
		Message:      chinitsu.ResultMessage(result),
		Explanations: explain(problem.Hand, result.CorrectWaits),
	}, nil
}

func (s *TrainerServiceImpl) AnalyzeHand(_ context.Context, req *service.AnalyzeHandReq) (*service.AnalyzeHandResp, error) {
	n := len(req.Hand)
	if n < 1 || n > 13 || n%3 != 1 {
		return nil, fmt.Errorf("%w: hand must have 1, 4, 7, 10 or 13 tiles, got %d", service.ErrInvalidHand, n)
	}
	if err := chinitsu.ValidateTiles(req.Hand); err != nil {
		return nil, fmt.Errorf("%w: %v", service.ErrInvalidHand, err)
	}

	hand := chinitsu.SortHand(req.Hand)
	waits := s.searcher.Waits(hand)
	return &service.AnalyzeHandResp{
		Hand:         hand,
		Glyphs:       chinitsu.RenderHand(hand),
		Waits:        waits,
		Tenpai:       len(waits) > 0,
		Ukeire:       chinitsu.Ukeire(hand, waits),
		Explanations: explain(hand, waits),
	}, nil
}

func (s *TrainerServiceImpl) ClassifyHand(_ context.Context, req *service.ClassifyHandReq) (*service.ClassifyHandResp, error) {
	n := len(req.Hand)
	if n < 2 || n > chinitsu.SevenPairsSize || n%3 != 2 {
		return nil, fmt.Errorf("%w: complete hand must have 2, 5, 8, 11 or 14 tiles, got %d", service.ErrInvalidHand, n)
	}
	if err := chinitsu.ValidateTiles(req.Hand); err != nil {
		return nil, fmt.Errorf("%w: %v", service.ErrInvalidHand, err)
	}

	hand := chinitsu.SortHand(req.Hand)
	resp := &service.ClassifyHandResp{
		Hand:    hand,
		Winning: s.searcher.IsWinning(hand),
		Groups:  []chinitsu.Group{},
	}
	if resp.Winning {
		resp.SevenPairs = chinitsu.IsSevenPairs(chinitsu.CountTiles(hand))
		resp.Groups = chinitsu.DecomposeHand(hand)
	}
	return resp, nil
}

func (s *TrainerServiceImpl) Decompose(_ context.Context, req *service.DecomposeReq) (*service.DecomposeResp, error) {
	n := len(req.Hand)
	if n < 1 || n > 13 || n%3 != 1 {
		return nil, fmt.Errorf("%w: hand must have 1, 4, 7, 10 or 13 tiles, got %d", service.ErrInvalidHand, n)
	}
	if !chinitsu.IsValidTile(req.Tile) {
		return nil, fmt.Errorf("%w: %w: %d", service.ErrInvalidHand, chinitsu.ErrInvalidTile, req.Tile)
	}
	if err := chinitsu.ValidateTiles(append(append([]int{}, req.Hand...), req.Tile)); err != nil {
		return nil, fmt.Errorf("%w: %v", service.ErrInvalidHand, err)
	}

	hand := chinitsu.SortHand(req.Hand)
	groups := chinitsu.GetWinningDecomposition(hand, req.Tile)
	return &service.DecomposeResp{
		Hand:    hand,
		Tile:    req.Tile,
		Winning: len(groups) > 0,
		Groups:  groups,
	}, nil
}

func (s *TrainerServiceImpl) Stats(ctx context.Context) (*service.StatsResp, error) {
	stats, err := s.attempts.Stats(ctx)
	if err != nil {
		log.Error("统计作答记录失败, err=%v", err)
		return nil, err
	}

	byDifficulty := make(map[int]entity.DifficultyStats, len(stats))
	for _, st := range stats {
		byDifficulty[st.Difficulty] = st
	}

	resp := &service.StatsResp{
		Difficulties: make([]service.DifficultyStat, 0, len(vo.Difficulties())),
		Pools:        make([]service.PoolStat, 0, len(s.opts.PoolKeys)),
	}
	for _, d := range vo.Difficulties() {
		st := byDifficulty[int(d)]
		resp.Difficulties = append(resp.Difficulties, service.DifficultyStat{
			Difficulty: int(d),
			Label:      d.Label(),
			Total:      st.Total,
			Correct:    st.Correct,
			Accuracy:   st.Accuracy(),
		})
	}

	if s.pool != nil {
		for _, key := range s.opts.PoolKeys {
			size, err := s.pool.Size(ctx, key)
			if err != nil {
				log.Warn("获取题库大小失败, key=%+v, err=%v", key, err)
				continue
			}
			resp.Pools = append(resp.Pools, service.PoolStat{
				Length:     key.Length,
				Difficulty: key.Difficulty,
				Size:       size,
			})
		}
	}
	return resp, nil
}

func (s *TrainerServiceImpl) RecentAttempts(ctx context.Context, limit int) ([]*entity.Attempt, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}
	attempts, err := s.attempts.ListRecent(ctx, limit)
	if err != nil {
		log.Error("查询作答记录失败, err=%v", err)
		return nil, err
	}
	return attempts, nil
}

// explain 每张待牌对应的和牌拆解
func explain(hand, waits []int) []service.WaitExplanation {
	out := make([]service.WaitExplanation, 0, len(waits))
	for _, w := range waits {
		out = append(out, service.WaitExplanation{
			Tile:   w,
			Glyph:  chinitsu.Glyph(w),
			Groups: chinitsu.GetWinningDecomposition(hand, w),
		})
	}
	return out
}
