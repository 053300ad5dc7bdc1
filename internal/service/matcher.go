package service

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/vinverse/gamerlink/internal/model"
	"github.com/vinverse/gamerlink/internal/repository"
)

const (
	maxRecommendations = 10
	rankMatchBonus     = 0.2
	gameMatchBonus     = 0.1
	fallbackBase       = 0.1
	fallbackRankBonus  = 0.3
)

// LFTView 候选广告视图
type LFTView struct {
	ID        string      `json:"id"`
	Author    UserProfile `json:"author"`
	Game      string      `json:"game"`
	Rank      string      `json:"rank"`
	Region    string      `json:"region"`
	PlayStyle string      `json:"play_style"`
	Message   string      `json:"message"`
}

// Recommendation 一条匹配结果
type Recommendation struct {
	Post       LFTView `json:"post"`
	MatchScore float64 `json:"match_score"`
	Similarity float64 `json:"similarity"`
}

// MatcherService 找队推荐，纯读侧
type MatcherService interface {
	Recommendations(ctx context.Context, userID, gameFilter string) ([]Recommendation, error)
}

type matcherService struct {
	lftRepo  repository.LFTRepository
	userRepo repository.UserRepository
}

func NewMatcherService(lftRepo repository.LFTRepository, userRepo repository.UserRepository) MatcherService {
	return &matcherService{lftRepo: lftRepo, userRepo: userRepo}
}

func (s *matcherService) Recommendations(ctx context.Context, userID, gameFilter string) ([]Recommendation, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, asNotFound(err, "user")
	}
	posts, err := s.lftRepo.ListCandidates(ctx, userID, gameFilter)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return []Recommendation{}, nil
	}

	authorIDs := make([]string, 0, len(posts))
	seen := make(map[string]struct{}, len(posts))
	for _, p := range posts {
		if _, ok := seen[p.AuthorID]; !ok {
			seen[p.AuthorID] = struct{}{}
			authorIDs = append(authorIDs, p.AuthorID)
		}
	}
	authors, err := s.userRepo.ListByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*model.User, len(authors))
	for _, a := range authors {
		byID[a.ID] = a
	}

	userFeatures := strings.ToLower(strings.TrimSpace(user.Rank + " " + user.GamerTag))

	recs := make([]Recommendation, 0, len(posts))
	for _, p := range posts {
		author, ok := byID[p.AuthorID]
		if !ok {
			continue
		}
		score, similarity := scoreCandidate(userFeatures, user.Rank, gameFilter, p)
		recs = append(recs, Recommendation{
			Post: LFTView{
				ID:        p.ID,
				Author:    NewUserProfile(author),
				Game:      p.Game,
				Rank:      p.Rank,
				Region:    p.Region,
				PlayStyle: p.PlayStyle,
				Message:   p.Message,
			},
			MatchScore: score,
			Similarity: similarity,
		})
	}

	// 稳定排序：同分保持输入顺序，结果可复现
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].MatchScore > recs[j].MatchScore
	})
	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs, nil
}

// scoreCandidate 双策略打分：词频余弦为主；两侧特征都没有词时
// （词表为空，余弦无定义）降级为子串重叠启发式。
func scoreCandidate(userFeatures, userRank, gameFilter string, p *model.LFTPost) (score, similarity float64) {
	postFeatures := strings.ToLower(strings.TrimSpace(p.Rank + " " + p.Game + " " + p.PlayStyle))

	userVec := termFreq(userFeatures)
	postVec := termFreq(postFeatures)
	if len(userVec) == 0 && len(postVec) == 0 {
		score = fallbackScore(userRank, p.Rank)
		return score, score
	}

	similarity = cosine(userVec, postVec)
	score = similarity
	if userRank != "" && p.Rank != "" && strings.EqualFold(userRank, p.Rank) {
		score += rankMatchBonus
	}
	if gameFilter != "" && strings.Contains(strings.ToLower(p.Game), strings.ToLower(gameFilter)) {
		score += gameMatchBonus
	}
	return score, similarity
}

// fallbackScore 子串重叠启发式：段位互为子串加分
func fallbackScore(userRank, postRank string) float64 {
	score := fallbackBase
	if userRank != "" && postRank != "" {
		ur, pr := strings.ToLower(userRank), strings.ToLower(postRank)
		if strings.Contains(ur, pr) || strings.Contains(pr, ur) {
			score += fallbackRankBonus
		}
	}
	return score
}

func termFreq(s string) map[string]float64 {
	vec := make(map[string]float64)
	for _, tok := range strings.Fields(s) {
		vec[tok]++
	}
	return vec
}

func cosine(a, b map[string]float64) float64 {
	var dot, na, nb float64
	for tok, va := range a {
		na += va * va
		if vb, ok := b[tok]; ok {
			dot += va * vb
		}
	}
	for _, vb := range b {
		nb += vb * vb
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
