package recommendations

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/xyz-asif/spire/internal/features/behaviors"
	"github.com/xyz-asif/spire/internal/features/content"
	"github.com/xyz-asif/spire/internal/features/places"
	"github.com/xyz-asif/spire/internal/features/users"
	"github.com/xyz-asif/spire/internal/metrics"
	"github.com/xyz-asif/spire/internal/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

// UserStore reads users and writes their favorite categories
type UserStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*users.User, error)
	ListIDs(ctx context.Context) ([]primitive.ObjectID, error)
	UpdateFavoriteCategories(ctx context.Context, id primitive.ObjectID, categories []string) error
}

// ContentReader reads a user's posts and boards
type ContentReader interface {
	PostsByUser(ctx context.Context, userID primitive.ObjectID) ([]content.Post, error)
	BoardsByUser(ctx context.Context, userID primitive.ObjectID) ([]content.Board, error)
}

// BehaviorReader reads a user's newest behaviors
type BehaviorReader interface {
	RecentByUser(ctx context.Context, userID primitive.ObjectID, limit int) ([]behaviors.Behavior, error)
}

// Catalog provides the active place snapshot
type Catalog interface {
	ActivePlaces(ctx context.Context) ([]places.Place, error)
}

// RecommendationStore creates recommendations and reports existing ones
type RecommendationStore interface {
	CreateIfAbsent(ctx context.Context, rec *UserRecommendation) (bool, error)
	ExistingPlaceIDs(ctx context.Context, userID primitive.ObjectID) (PlaceSet, error)
}

// Service runs the recommendation engine against its collaborators
type Service struct {
	users     UserStore
	content   ContentReader
	behaviors BehaviorReader
	catalog   Catalog
	store     RecommendationStore
	log       zerolog.Logger
	now       func() time.Time
}

func NewService(
	userStore UserStore,
	contentReader ContentReader,
	behaviorReader BehaviorReader,
	catalog Catalog,
	store RecommendationStore,
) *Service {
	return &Service{
		users:     userStore,
		content:   contentReader,
		behaviors: behaviorReader,
		catalog:   catalog,
		store:     store,
		log:       logger.Component("recommendations"),
		now:       time.Now,
	}
}

// BuildProfile gathers the user's signals and aggregates them. The bool is
// false when the user has no signal and generation must use the fallback.
func (s *Service) BuildProfile(ctx context.Context, userID primitive.ObjectID) (TagProfile, bool, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return TagProfile{}, false, fmt.Errorf("load user: %w", err)
	}
	posts, err := s.content.PostsByUser(ctx, userID)
	if err != nil {
		return TagProfile{}, false, fmt.Errorf("load posts: %w", err)
	}
	boards, err := s.content.BoardsByUser(ctx, userID)
	if err != nil {
		return TagProfile{}, false, fmt.Errorf("load boards: %w", err)
	}
	recent, err := s.behaviors.RecentByUser(ctx, userID, RecentBehaviorWindow)
	if err != nil {
		return TagProfile{}, false, fmt.Errorf("load behaviors: %w", err)
	}

	profile, ok := BuildProfile(ProfileSources{
		Posts:              posts,
		Boards:             boards,
		Behaviors:          recent,
		FavoriteCategories: user.FavoriteCategories,
	})
	return profile, ok, nil
}

// GenerateForUser scores the catalog for one user and stores the top
// limit candidates that are new for them
func (s *Service) GenerateForUser(ctx context.Context, userID primitive.ObjectID, limit int) (result RunResult, err error) {
	start := s.now()
	result = RunResult{UserID: userID, Path: metrics.PathProfile}
	defer func() {
		metrics.RecordGeneration(result.Path, result.Scored, result.Created, time.Since(start), err)
	}()

	profile, ok, err := s.BuildProfile(ctx, userID)
	if err != nil {
		return result, err
	}

	catalog, err := s.catalog.ActivePlaces(ctx)
	if err != nil {
		return result, fmt.Errorf("load catalog: %w", err)
	}

	var scored []ScoredCandidate
	if ok {
		exclude, err := s.store.ExistingPlaceIDs(ctx, userID)
		if err != nil {
			return result, fmt.Errorf("load existing recommendations: %w", err)
		}
		scored = ScoreCandidates(&profile, catalog, exclude)
	} else {
		result.Path = metrics.PathFallback
		scored = ScoreCandidates(nil, catalog, nil)
	}
	result.Scored = len(scored)

	ranked := RankAndLimit(scored, limit)
	result.Ranked = len(ranked)

	created, err := s.Persist(ctx, userID, ranked)
	result.Created = created
	if err != nil {
		return result, err
	}

	s.log.Debug().
		Str("user_id", userID.Hex()).
		Str("path", result.Path).
		Int("scored", result.Scored).
		Int("created", result.Created).
		Msg("recommendations generated")

	return result, nil
}

// Persist stores each ranked candidate unless the user already has a row
// for that place. Existing rows are never overwritten. Returns how many
// rows were created.
func (s *Service) Persist(ctx context.Context, userID primitive.ObjectID, ranked []ScoredCandidate) (int, error) {
	created := 0
	for _, c := range ranked {
		rec := &UserRecommendation{
			UserID:       userID,
			PlaceID:      c.Place.ID,
			Score:        c.Score,
			MatchReasons: c.MatchReasons,
		}
		ok, err := s.store.CreateIfAbsent(ctx, rec)
		if err != nil {
			return created, err
		}
		if ok {
			created++
		}
	}
	return created, nil
}

// RefreshFavoriteCategories recomputes and stores the user's top tags
func (s *Service) RefreshFavoriteCategories(ctx context.Context, userID primitive.ObjectID) (categories []string, err error) {
	defer func() { metrics.RecordPreferenceRefresh(err) }()

	posts, err := s.content.PostsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load posts: %w", err)
	}
	boards, err := s.content.BoardsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load boards: %w", err)
	}

	categories = FavoriteCategories(posts, boards)
	if err := s.users.UpdateFavoriteCategories(ctx, userID, categories); err != nil {
		return nil, fmt.Errorf("update favorite categories: %w", err)
	}
	return categories, nil
}

// GenerateForAllUsers runs GenerateForUser for every user on up to workers
// goroutines. A failing user is logged and counted; the run goes on.
// The error is only set when the user list cannot be read or ctx ends.
func (s *Service) GenerateForAllUsers(ctx context.Context, workers, limit int) (BatchResult, error) {
	var created atomic.Int64
	result, err := s.forEachUser(ctx, "generate", workers, func(ctx context.Context, id primitive.ObjectID) error {
		run, err := s.GenerateForUser(ctx, id, limit)
		created.Add(int64(run.Created))
		return err
	})
	result.Created = int(created.Load())
	return result, err
}

// RefreshAllPreferences runs RefreshFavoriteCategories for every user with
// the same failure isolation as GenerateForAllUsers
func (s *Service) RefreshAllPreferences(ctx context.Context, workers int) (BatchResult, error) {
	return s.forEachUser(ctx, "refresh-preferences", workers, func(ctx context.Context, id primitive.ObjectID) error {
		_, err := s.RefreshFavoriteCategories(ctx, id)
		return err
	})
}

func (s *Service) forEachUser(ctx context.Context, job string, workers int, fn func(context.Context, primitive.ObjectID) error) (BatchResult, error) {
	start := s.now()
	result := BatchResult{RunID: uuid.NewString()}
	log := s.log.With().Str("job", job).Str("run_id", result.RunID).Logger()

	ids, err := s.users.ListIDs(ctx)
	if err != nil {
		return result, fmt.Errorf("list users: %w", err)
	}
	result.Users = len(ids)

	if workers < 1 {
		workers = 1
	}

	var succeeded, failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, id := range ids {
		if gctx.Err() != nil {
			break
		}
		id := id
		g.Go(func() error {
			if err := runIsolated(gctx, id, fn); err != nil {
				failed.Add(1)
				log.Error().Err(err).Str("user_id", id.Hex()).Msg("user failed")
				return nil
			}
			succeeded.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	result.Succeeded = int(succeeded.Load())
	result.Failed = int(failed.Load())
	result.Duration = time.Since(start)

	log.Info().
		Int("users", result.Users).
		Int("succeeded", result.Succeeded).
		Int("failed", result.Failed).
		Dur("duration", result.Duration).
		Msg("batch finished")

	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

// runIsolated turns a panic in fn into an error for that user only
func runIsolated(ctx context.Context, id primitive.ObjectID, fn func(context.Context, primitive.ObjectID) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn(ctx, id)
}
