package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"skill-match/internal/catalog"
	"skill-match/internal/domain/event"
	"skill-match/internal/domain/ledger"
	"skill-match/internal/domain/matching"
	"skill-match/internal/domain/user"
	"skill-match/internal/pkg/jwt"
	"skill-match/internal/repository/memory"
	ucauth "skill-match/internal/usecase/auth"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCache struct {
	mu       sync.Mutex
	values   map[string][]byte
	noSetNX  bool
	gets     int
	hits     int
	prefixes []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string][]byte)}
}

func (c *fakeCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	b, ok := c.values[key]
	if !ok {
		return false, nil
	}
	c.hits++
	return true, json.Unmarshal(b, out)
}

func (c *fakeCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = b
	return nil
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, key)
	return nil
}

func (c *fakeCache) DeleteByPrefix(_ context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prefixes = append(c.prefixes, prefix)
	for k := range c.values {
		if strings.HasPrefix(k, prefix) {
			delete(c.values, k)
		}
	}
	return nil
}

func (c *fakeCache) SetIfNotExists(_ context.Context, key string, value string, _ time.Duration) (bool, error) {
	if c.noSetNX {
		return false, errors.New("redis unavailable")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.values[key]; ok {
		return false, nil
	}
	c.values[key] = []byte(value)
	return true, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []event.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e event.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type harness struct {
	users   *memory.UserRepository
	ledger  *ledger.Memory
	catalog *catalog.Catalog
	cache   *fakeCache
	events  *recordingPublisher
	jwt     *jwt.HMACService

	auth    *Auth
	profile *User
	skills  *UserSkill
	jobs    *JobList
	actions *Action
	courses *Course
	cat     *Catalog
}

func newHarness(t *testing.T, dedupe bool) *harness {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)

	h := &harness{
		users:   memory.NewUserRepository(),
		ledger:  ledger.NewMemory(),
		catalog: cat,
		cache:   newFakeCache(),
		events:  &recordingPublisher{},
		jwt:     jwt.NewHMACService("access-secret-0123456789", "refresh-secret-0123456789", time.Minute, time.Hour, "skill-match"),
	}
	badges := ledger.DefaultBadges()
	matcher := NewMatcher(cat, matching.DefaultPolicy(), 2, 4)

	h.auth = NewAuthUsecase(h.users, h.ledger, h.jwt, h.events, nil)
	h.profile = NewUserUsecase(h.users, h.ledger, badges, h.events, nil)
	h.skills = NewUserSkillUsecase(h.users, h.ledger, cat.Taxonomy(), badges, h.cache, h.events, nil)
	h.jobs = NewJobListUsecase(h.users, h.ledger, cat, matcher, h.cache, nil)
	h.actions = NewActionUsecase(h.users, h.ledger, cat, badges, NewDailyGuard(h.cache, nil), h.cache, h.events, nil, ActionOptions{DedupeDaily: dedupe})
	h.courses = NewCourseUsecase(h.actions)
	h.cat = NewCatalogUsecase(cat)
	return h
}

func (h *harness) login(t *testing.T, email string) user.User {
	t.Helper()
	res, err := h.auth.Login(context.Background(), ucauth.LoginInput{Name: "Test User", Email: email})
	require.NoError(t, err)
	return res.User
}

func TestAuth_LoginCreatesOnceAndIssuesTokens(t *testing.T) {
	h := newHarness(t, true)
	ctx := context.Background()

	first, err := h.auth.Login(ctx, ucauth.LoginInput{Name: "  Ada   Lovelace ", Email: " Ada@Example.com "})
	require.NoError(t, err)
	assert.True(t, first.Created)
	assert.Equal(t, "Ada Lovelace", first.User.Name)
	assert.Equal(t, "ada@example.com", first.User.Email)

	claims, err := h.jwt.ValidateAccessToken(first.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, claims.UserID)

	second, err := h.auth.Login(ctx, ucauth.LoginInput{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, first.User.ID, second.User.ID)

	assert.Equal(t, []string{event.TypeUserCreated}, h.events.types())
}

func TestAuth_LoginRejectsBadInput(t *testing.T) {
	h := newHarness(t, true)
	for _, in := range []ucauth.LoginInput{
		{Name: "", Email: "a@b.co"},
		{Name: "A", Email: "not-an-email"},
		{Name: strings.Repeat("x", 121), Email: "a@b.co"},
	} {
		_, err := h.auth.Login(context.Background(), in)
		assert.ErrorIs(t, err, ErrInvalidInput, "%+v", in)
	}
}

func TestAuth_Refresh(t *testing.T) {
	h := newHarness(t, true)
	ctx := context.Background()
	res, err := h.auth.Login(ctx, ucauth.LoginInput{Name: "A", Email: "a@b.co"})
	require.NoError(t, err)

	access, refresh, err := h.auth.Refresh(ctx, res.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)

	_, _, err = h.auth.Refresh(ctx, res.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	_, _, err = h.auth.Refresh(ctx, "")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestUserSkill_MergeIsIdempotentAndReplaceable(t *testing.T) {
	h := newHarness(t, true)
	ctx := context.Background()
	u := h.login(t, "m@b.co")

	p, err := h.skills.UpdateSkills(ctx, u.ID, UpdateSkillsInput{Skills: []string{"Python", "gis"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"gis", "python"}, p.User.Skills.Sorted())

	p, err = h.skills.UpdateSkills(ctx, u.ID, UpdateSkillsInput{Skills: []string{"python", "gis"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"gis", "python"}, p.User.Skills.Sorted())

	p, err = h.skills.UpdateSkills(ctx, u.ID, UpdateSkillsInput{Skills: []string{"forestry"}, Replace: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"forestry"}, p.User.Skills.Sorted())

	assert.Contains(t, h.cache.prefixes, ListingPrefix(u.ID))
}

func TestUserSkill_Errors(t *testing.T) {
	h := newHarness(t, true)
	ctx := context.Background()
	u := h.login(t, "e@b.co")

	_, err := h.skills.UpdateSkills(ctx, u.ID, UpdateSkillsInput{Skills: []string{"python", "basket-weaving"}})
	require.ErrorIs(t, err, ErrSkillNotFound)
	var unknown *UnknownSkillsError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, []string{"basket-weaving"}, unknown.IDs)

	_, err = h.skills.UpdateSkills(ctx, u.ID, UpdateSkillsInput{Skills: []string{" "}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = h.skills.UpdateSkills(ctx, uuid.New(), UpdateSkillsInput{Skills: []string{"python"}})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestJobList_OrderEligibilityAndCache(t *testing.T) {
	h := newHarness(t, true)
	ctx := context.Background()
	u := h.login(t, "j@b.co")

	_, err := h.skills.UpdateSkills(ctx, u.ID, UpdateSkillsInput{Skills: []string{"python", "data-analysis", "statistics"}})
	require.NoError(t, err)

	items, err := h.jobs.ListJobs(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, items, 5)
	assert.Equal(t, "j3", items[0].Job.ID)
	assert.Equal(t, 75, items[0].Result.MatchPercent)
	assert.Equal(t, 75, items[0].Result.RankScore)
	assert.False(t, items[0].Result.MeetsEligibility)
	assert.Equal(t, 50, items[0].Result.LifePointsNeeded)
	assert.Equal(t, []string{"c3"}, items[0].Result.RecommendedCourses)
	for i := 1; i < len(items); i++ {
		prev, cur := items[i-1].Result, items[i].Result
		assert.True(t, prev.RankScore > cur.RankScore || (prev.RankScore == cur.RankScore && items[i-1].Job.ID < items[i].Job.ID))
	}

	again, err := h.jobs.ListJobs(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, h.cache.hits)
	assert.Equal(t, items[0].Result.MatchedSkills.Sorted(), again[0].Result.MatchedSkills.Sorted())

	_, err = h.actions.LogAction(ctx, u.ID, "e2")
	require.NoError(t, err)

	items, err = h.jobs.ListJobs(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "j3", items[0].Job.ID)
	assert.True(t, items[0].Result.MeetsEligibility)
	assert.Equal(t, 75, items[0].Result.MatchPercent)
	assert.Equal(t, 90, items[0].Result.RankScore)
	assert.Equal(t, 1, h.cache.hits)
}

func TestJobList_PrivilegedJobIsLocked(t *testing.T) {
	h := newHarness(t, true)
	ctx := context.Background()
	u := h.login(t, "p@b.co")

	// 250 points against a job that needs 300.
	for _, id := range []string{"t3", "e2"} {
		_, err := h.actions.LogAction(ctx, u.ID, id)
		require.NoError(t, err)
	}

	m, err := h.jobs.GetJob(ctx, u.ID, "j2")
	require.NoError(t, err)
	assert.False(t, m.Result.MeetsEligibility)
	assert.True(t, m.Result.Locked)
	assert.Equal(t, 50, m.Result.LifePointsNeeded)
	assert.Equal(t, 0, m.Result.MatchPercent)

	_, err = h.jobs.GetJob(ctx, u.ID, "j404")
	assert.ErrorIs(t, err, ErrJobNotFound)
	_, err = h.jobs.ListJobs(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAction_ConcurrentAppendsSum(t *testing.T) {
	h := newHarness(t, true)
	ctx := context.Background()
	u := h.login(t, "c@b.co")

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for _, id := range []string{"e2", "e3"} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := h.actions.LogAction(ctx, u.ID, id)
			errs <- err
		}(id)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	p, err := h.profile.GetProfile(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 80, p.User.LifePoints)
	assert.Len(t, p.Entries, 2)
	assert.Equal(t, "Beginner", p.BadgeLevel)
	assert.Equal(t, "Contributor", p.Progress.Next)
	assert.Equal(t, 20, p.Progress.Remaining)
	assert.InDelta(t, 0.7, p.CarbonSaved, 1e-9)
}

func TestAction_DailyDedupe(t *testing.T) {
	h := newHarness(t, true)
	ctx := context.Background()
	u := h.login(t, "d@b.co")

	res, err := h.actions.LogAction(ctx, u.ID, "t1")
	require.NoError(t, err)
	assert.Equal(t, 20, res.LifePoints)
	assert.Equal(t, 1, res.Entry.Seq)

	_, err = h.actions.LogAction(ctx, u.ID, "T1")
	assert.ErrorIs(t, err, ErrDuplicateAction)

	// The next UTC day accepts it again.
	h.actions.now = func() time.Time { return time.Now().Add(24 * time.Hour) }
	res, err = h.actions.LogAction(ctx, u.ID, "t1")
	require.NoError(t, err)
	assert.Equal(t, 40, res.LifePoints)
}

func TestAction_DedupeFallsBackToLocalGuard(t *testing.T) {
	h := newHarness(t, true)
	h.cache.noSetNX = true
	ctx := context.Background()
	u := h.login(t, "f@b.co")

	_, err := h.actions.LogAction(ctx, u.ID, "w1")
	require.NoError(t, err)
	_, err = h.actions.LogAction(ctx, u.ID, "w1")
	assert.ErrorIs(t, err, ErrDuplicateAction)
}

func TestAction_WithoutDedupeAppendsTwice(t *testing.T) {
	h := newHarness(t, false)
	ctx := context.Background()
	u := h.login(t, "n@b.co")

	for i := 0; i < 2; i++ {
		_, err := h.actions.LogAction(ctx, u.ID, "w2")
		require.NoError(t, err)
	}
	total, err := h.ledger.Total(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, total)

	stored, err := h.users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, stored.LifePoints)
}

func TestAction_Errors(t *testing.T) {
	h := newHarness(t, true)
	ctx := context.Background()
	u := h.login(t, "x@b.co")

	_, err := h.actions.LogAction(ctx, u.ID, "")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = h.actions.LogAction(ctx, u.ID, "zz")
	assert.ErrorIs(t, err, ErrActionNotFound)
	_, err = h.actions.LogAction(ctx, uuid.New(), "e1")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

type failingLedger struct {
	ledger.Ledger
}

func (failingLedger) Append(context.Context, uuid.UUID, ledger.Action) (ledger.Entry, error) {
	return ledger.Entry{}, errors.New("connection reset")
}

func TestAction_LedgerFailureReleasesGuard(t *testing.T) {
	h := newHarness(t, true)
	ctx := context.Background()
	u := h.login(t, "l@b.co")

	broken := *h.actions
	broken.ledger = failingLedger{Ledger: h.ledger}
	_, err := broken.LogAction(ctx, u.ID, "e1")
	assert.ErrorIs(t, err, ErrLedgerUnavailable)

	_, err = h.actions.LogAction(ctx, u.ID, "e1")
	assert.NoError(t, err)
}

func TestCourse_CompleteAwardsPointsAndSkills(t *testing.T) {
	h := newHarness(t, true)
	ctx := context.Background()
	u := h.login(t, "k@b.co")

	res, err := h.courses.CompleteCourse(ctx, u.ID, "c1")
	require.NoError(t, err)
	assert.Equal(t, 50, res.LifePoints)
	assert.Equal(t, CategoryLearning, res.Entry.Category)
	assert.Equal(t, []string{"renewable-energy", "solar-pv"}, res.Profile.User.Skills.Sorted())

	_, err = h.courses.CompleteCourse(ctx, u.ID, "c1")
	assert.ErrorIs(t, err, ErrDuplicateAction)
	_, err = h.courses.CompleteCourse(ctx, u.ID, "c9")
	assert.ErrorIs(t, err, ErrCourseNotFound)

	assert.Contains(t, h.events.types(), event.TypeLedgerAppended)
	assert.Contains(t, h.events.types(), event.TypeSkillsUpdated)
}

func TestUser_UpdateCareerGoal(t *testing.T) {
	h := newHarness(t, true)
	ctx := context.Background()
	u := h.login(t, "g@b.co")

	p, err := h.profile.UpdateCareerGoal(ctx, u.ID, "  Solar installer ")
	require.NoError(t, err)
	assert.Equal(t, "Solar installer", p.User.CareerGoal)
	assert.NotNil(t, p.Entries)

	_, err = h.profile.UpdateCareerGoal(ctx, u.ID, strings.Repeat("g", 501))
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = h.profile.UpdateCareerGoal(ctx, uuid.New(), "x")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCatalog_ParseResumeAndListings(t *testing.T) {
	h := newHarness(t, true)
	ctx := context.Background()

	ids, err := h.cat.ParseResume(ctx, "I build Python tooling for Solar Energy farms.")
	require.NoError(t, err)
	assert.Equal(t, []string{"python", "solar-pv"}, ids)

	ids, err = h.cat.ParseResume(ctx, "   ")
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.NotNil(t, ids)

	_, err = h.cat.ParseResume(ctx, strings.Repeat("a", MaxResumeLength+1))
	assert.ErrorIs(t, err, ErrResumeTooLong)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "100000")

	ids, err = h.cat.ParseResume(ctx, strings.Repeat("é", MaxResumeLength-7)+" python")
	require.NoError(t, err)
	assert.Equal(t, []string{"python"}, ids)

	assert.Len(t, h.cat.ListCourses(ctx), 3)
	assert.Len(t, h.cat.ListSkills(ctx), 20)
	byCat := h.cat.LifeActions(ctx)
	assert.Len(t, byCat["energy"], 3)
	assert.Len(t, byCat["waste"], 2)
}

func TestListingCacheKey_ChangesWithInputs(t *testing.T) {
	id := uuid.New()
	base := ListingCacheKey(id, nil, 0, 0)
	assert.True(t, strings.HasPrefix(base, ListingPrefix(id)))
	assert.NotEqual(t, base, ListingCacheKey(id, nil, 10, 1))
	assert.NotEqual(t, base, ListingCacheKey(uuid.New(), nil, 0, 0))
}

func TestDedupeKey_UsesUTCDay(t *testing.T) {
	id := uuid.New()
	loc := time.FixedZone("UTC+7", 7*3600)
	late := time.Date(2024, 3, 1, 23, 30, 0, 0, time.UTC)
	sameInstant := late.In(loc)
	assert.Equal(t, DedupeKey(id, "E1", late), DedupeKey(id, "e1", sameInstant))
	assert.True(t, strings.HasSuffix(DedupeKey(id, "e1", late), ":2024-03-01"))
}

// flakyLedger fails Total from the failTotalFrom-th call on, and Entries
// when failEntries is set.
type flakyLedger struct {
	ledger.Ledger
	failTotalFrom int
	failEntries   bool

	mu    sync.Mutex
	calls int
}

func (f *flakyLedger) Total(ctx context.Context, userID uuid.UUID) (int, error) {
	f.mu.Lock()
	f.calls++
	n := f.calls
	f.mu.Unlock()
	if f.failTotalFrom > 0 && n >= f.failTotalFrom {
		return 0, errors.New("read timeout")
	}
	return f.Ledger.Total(ctx, userID)
}

func (f *flakyLedger) Entries(ctx context.Context, userID uuid.UUID) ([]ledger.Entry, error) {
	if f.failEntries {
		return nil, errors.New("read timeout")
	}
	return f.Ledger.Entries(ctx, userID)
}

func TestAuth_LoginReportsLedgerTotalAfterConcurrentAppends(t *testing.T) {
	h := newHarness(t, true)
	ctx := context.Background()
	u := h.login(t, "race@b.co")

	ids := []string{"e1", "e2", "e3", "t1", "t2", "t3", "w1", "w2"}
	var wg sync.WaitGroup
	errs := make(chan error, len(ids))
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := h.actions.LogAction(ctx, u.ID, id)
			errs <- err
		}(id)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	total, err := h.ledger.Total(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 405, total)

	res, err := h.auth.Login(ctx, ucauth.LoginInput{Name: "Test User", Email: "race@b.co"})
	require.NoError(t, err)
	assert.Equal(t, total, res.User.LifePoints)

	stored, err := h.users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, total, stored.LifePoints)
}

func TestAuth_LoginLedgerFailureIsRetryable(t *testing.T) {
	h := newHarness(t, true)
	h.login(t, "down@b.co")

	auth := NewAuthUsecase(h.users, &flakyLedger{Ledger: h.ledger, failTotalFrom: 1}, h.jwt, h.events, nil)
	_, err := auth.Login(context.Background(), ucauth.LoginInput{Name: "Test User", Email: "down@b.co"})
	assert.ErrorIs(t, err, ErrLedgerUnavailable)
}

func TestAction_TotalFailureAfterAppendStillSucceeds(t *testing.T) {
	h := newHarness(t, true)
	ctx := context.Background()
	u := h.login(t, "post@b.co")
	_, err := h.actions.LogAction(ctx, u.ID, "e1")
	require.NoError(t, err)

	flaky := *h.actions
	flaky.ledger = &flakyLedger{Ledger: h.ledger, failTotalFrom: 2}
	res, err := flaky.LogAction(ctx, u.ID, "w2")
	require.NoError(t, err)
	assert.Equal(t, 35, res.LifePoints)
	assert.Equal(t, 25, res.Entry.Points)

	// The append is recorded, so a retry is a duplicate and not a second award.
	_, err = h.actions.LogAction(ctx, u.ID, "w2")
	assert.ErrorIs(t, err, ErrDuplicateAction)
	total, err := h.ledger.Total(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 35, total)
}

func TestAction_TotalFailureBeforeAppendIsRetryable(t *testing.T) {
	h := newHarness(t, true)
	ctx := context.Background()
	u := h.login(t, "pre@b.co")

	flaky := *h.actions
	flaky.ledger = &flakyLedger{Ledger: h.ledger, failTotalFrom: 1}
	_, err := flaky.LogAction(ctx, u.ID, "w2")
	assert.ErrorIs(t, err, ErrLedgerUnavailable)

	entries, err := h.ledger.Entries(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)

	res, err := h.actions.LogAction(ctx, u.ID, "w2")
	require.NoError(t, err)
	assert.Equal(t, 25, res.LifePoints)
}

func TestCourse_SkillsMergedWhenAppendFails(t *testing.T) {
	h := newHarness(t, true)
	ctx := context.Background()
	u := h.login(t, "merge@b.co")

	broken := *h.actions
	broken.ledger = failingLedger{Ledger: h.ledger}
	_, err := NewCourseUsecase(&broken).CompleteCourse(ctx, u.ID, "c1")
	assert.ErrorIs(t, err, ErrLedgerUnavailable)

	stored, err := h.users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"renewable-energy", "solar-pv"}, stored.Skills.Sorted())
	assert.NotContains(t, h.events.types(), event.TypeSkillsUpdated)

	res, err := h.courses.CompleteCourse(ctx, u.ID, "c1")
	require.NoError(t, err)
	assert.Equal(t, 50, res.LifePoints)
	assert.Contains(t, h.events.types(), event.TypeSkillsUpdated)
}

func TestCourse_ProfileReloadFailureAfterAppendIsNotAnError(t *testing.T) {
	h := newHarness(t, true)
	ctx := context.Background()
	u := h.login(t, "reload@b.co")

	flaky := *h.actions
	flaky.ledger = &flakyLedger{Ledger: h.ledger, failEntries: true}
	res, err := NewCourseUsecase(&flaky).CompleteCourse(ctx, u.ID, "c1")
	require.NoError(t, err)
	assert.Equal(t, 50, res.LifePoints)
	assert.Equal(t, 50, res.Profile.User.LifePoints)
	assert.Equal(t, []string{"renewable-energy", "solar-pv"}, res.Profile.User.Skills.Sorted())

	_, err = h.courses.CompleteCourse(ctx, u.ID, "c1")
	assert.ErrorIs(t, err, ErrDuplicateAction)
}
