// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package search_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	scouterrors "github.com/sirseerhq/sirseer-scout/internal/errors"
	"github.com/sirseerhq/sirseer-scout/internal/github"
	"github.com/sirseerhq/sirseer-scout/internal/search"
)

func fullPage(prefix string, total int) *github.SearchPage {
	return &github.SearchPage{TotalCount: total, Items: github.GenerateUsers(prefix, github.PageSize)}
}

func TestSearch_AliceScenario(t *testing.T) {
	mock := github.NewMockClientWithOptions(github.WithPage(1, fullPage("alice", 45)))
	ctrl := search.NewController(mock)

	require.NoError(t, ctrl.Search(context.Background(), "alice"))

	snap := ctrl.Snapshot()
	assert.Equal(t, 45, snap.State.Results)
	assert.Len(t, snap.Users, 20)
	assert.False(t, snap.State.EndOfResults)
	assert.Equal(t, 2, snap.State.Page)
	assert.False(t, snap.State.Fetching)

	require.Len(t, mock.SearchCalls, 1)
	assert.Equal(t, github.SearchOptions{Term: "alice", Page: 1, PerPage: 20}, mock.SearchCalls[0])
}

func TestSearch_ReplacesListWithFirstPage(t *testing.T) {
	first := github.GenerateUsers("first", 7)
	second := github.GenerateUsers("second", 3)

	mock := github.NewMockClientWithOptions(github.WithPage(1, &github.SearchPage{TotalCount: 7, Items: first}))
	ctrl := search.NewController(mock)
	require.NoError(t, ctrl.Search(context.Background(), "first"))
	assert.Equal(t, first, ctrl.Snapshot().Users)

	mock.Pages[1] = &github.SearchPage{TotalCount: 3, Items: second}
	require.NoError(t, ctrl.Search(context.Background(), "second"))

	snap := ctrl.Snapshot()
	assert.Equal(t, second, snap.Users)
	assert.Equal(t, 3, snap.State.Results)
	assert.Equal(t, "second", snap.State.Term)
}

func TestSearch_ShortFirstPageDoesNotEndResults(t *testing.T) {
	mock := github.NewMockClientWithOptions(
		github.WithPage(1, &github.SearchPage{TotalCount: 2, Items: github.GenerateUsers("a", 2)}),
	)
	ctrl := search.NewController(mock)

	require.NoError(t, ctrl.Search(context.Background(), "a"))
	assert.False(t, ctrl.State().EndOfResults)
}

func TestSearch_EmptyItemsClearsList(t *testing.T) {
	mock := github.NewMockClientWithOptions(github.WithPage(1, fullPage("a", 45)))
	ctrl := search.NewController(mock)
	require.NoError(t, ctrl.Search(context.Background(), "a"))

	mock.Pages[1] = &github.SearchPage{TotalCount: 0, Items: []github.UserSummary{}}
	require.NoError(t, ctrl.Search(context.Background(), "zzz"))

	snap := ctrl.Snapshot()
	assert.Empty(t, snap.Users)
	assert.Equal(t, 0, snap.State.Results)
}

func TestSearch_MissingItemsKeepsList(t *testing.T) {
	mock := github.NewMockClientWithOptions(github.WithPage(1, fullPage("a", 45)))
	ctrl := search.NewController(mock)
	require.NoError(t, ctrl.Search(context.Background(), "a"))

	mock.Pages[1] = &github.SearchPage{TotalCount: 0}
	require.NoError(t, ctrl.Search(context.Background(), "b"))

	snap := ctrl.Snapshot()
	assert.Len(t, snap.Users, 20)
	assert.Equal(t, 45, snap.State.Results)
	assert.Equal(t, "b", snap.State.Term)
}

func TestSearch_APIError(t *testing.T) {
	mock := github.NewMockClientWithOptions(github.WithPage(1, fullPage("a", 45)))
	ctrl := search.NewController(mock)
	require.NoError(t, ctrl.Search(context.Background(), "a"))

	mock.Error = &github.APIError{StatusCode: 403, Message: "API rate limit exceeded"}
	err := ctrl.Search(context.Background(), "b")
	require.ErrorIs(t, err, scouterrors.ErrAPI)

	snap := ctrl.Snapshot()
	assert.Len(t, snap.Users, 20)
	assert.Equal(t, 45, snap.State.Results)
}

func TestSearch_EmptyTerm(t *testing.T) {
	mock := github.NewMockClientWithOptions()
	ctrl := search.NewController(mock)

	err := ctrl.Search(context.Background(), "  ")
	assert.ErrorIs(t, err, scouterrors.ErrEmptyTerm)
	assert.Zero(t, mock.SearchCallCount())
}

func TestFetchNextPage_FullPageIncrementsPage(t *testing.T) {
	mock := github.NewMockClientWithOptions(
		github.WithPage(1, fullPage("p1", 60)),
		github.WithPage(2, fullPage("p2", 60)),
		github.WithPage(3, fullPage("p3", 60)),
	)
	ctrl := search.NewController(mock)
	require.NoError(t, ctrl.Search(context.Background(), "x"))

	started, err := ctrl.FetchNextPage(context.Background())
	require.NoError(t, err)
	assert.True(t, started)
	assert.Equal(t, 3, ctrl.State().Page)
	assert.Len(t, ctrl.Snapshot().Users, 40)

	_, err = ctrl.FetchNextPage(context.Background())
	require.NoError(t, err)

	require.Len(t, mock.SearchCalls, 3)
	assert.Equal(t, 2, mock.SearchCalls[1].Page)
	assert.Equal(t, 3, mock.SearchCalls[2].Page)
	assert.Equal(t, 4, ctrl.State().Page)
}

func TestFetchNextPage_AppendsInOrder(t *testing.T) {
	p1 := fullPage("p1", 25)
	p2 := &github.SearchPage{TotalCount: 25, Items: github.GenerateUsers("p2", 5)}
	mock := github.NewMockClientWithOptions(github.WithPage(1, p1), github.WithPage(2, p2))
	ctrl := search.NewController(mock)
	require.NoError(t, ctrl.Search(context.Background(), "x"))

	_, err := ctrl.FetchNextPage(context.Background())
	require.NoError(t, err)

	want := append(append([]github.UserSummary{}, p1.Items...), p2.Items...)
	assert.Equal(t, want, ctrl.Snapshot().Users)
}

func TestFetchNextPage_ShortPageEndsResults(t *testing.T) {
	mock := github.NewMockClientWithOptions(
		github.WithPage(1, fullPage("p1", 25)),
		github.WithPage(2, &github.SearchPage{TotalCount: 25, Items: github.GenerateUsers("p2", 5)}),
	)
	ctrl := search.NewController(mock)
	require.NoError(t, ctrl.Search(context.Background(), "x"))

	_, err := ctrl.FetchNextPage(context.Background())
	require.NoError(t, err)

	state := ctrl.State()
	assert.True(t, state.EndOfResults)
	assert.Equal(t, 2, state.Page)

	started, err := ctrl.FetchNextPage(context.Background())
	require.NoError(t, err)
	assert.False(t, started)
	assert.Equal(t, 2, mock.SearchCallCount())

	fetch, _ := ctrl.OnScroll(search.ScrollPosition{Offset: 10000, ViewportHeight: 400, ContentHeight: 1000})
	assert.False(t, fetch)
}

func TestFetchNextPage_WithoutSearchIsNoop(t *testing.T) {
	mock := github.NewMockClientWithOptions()
	ctrl := search.NewController(mock)

	started, err := ctrl.FetchNextPage(context.Background())
	require.NoError(t, err)
	assert.False(t, started)
	assert.Zero(t, mock.SearchCallCount())
}

func TestFetchNextPage_SingleFlight(t *testing.T) {
	mock := github.NewMockClientWithOptions(
		github.WithPage(1, fullPage("p1", 60)),
		github.WithPage(2, fullPage("p2", 60)),
	)
	ctrl := search.NewController(mock)
	require.NoError(t, ctrl.Search(context.Background(), "x"))

	gate := make(chan struct{})
	mock.Gate = gate

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := ctrl.FetchNextPage(context.Background())
		assert.NoError(t, err)
	}()

	require.Eventually(t, func() bool { return ctrl.State().Fetching }, time.Second, time.Millisecond)

	for i := 0; i < 10; i++ {
		started, err := ctrl.FetchNextPage(context.Background())
		require.NoError(t, err)
		assert.False(t, started)
	}

	close(gate)
	wg.Wait()

	assert.Equal(t, 2, mock.SearchCallCount())
	assert.False(t, ctrl.State().Fetching)
	assert.Equal(t, 3, ctrl.State().Page)
}

func TestBeginNextPage_ConcurrentCallersGetOneTicket(t *testing.T) {
	mock := github.NewMockClientWithOptions(github.WithPage(1, fullPage("p1", 60)))
	ctrl := search.NewController(mock)
	require.NoError(t, ctrl.Search(context.Background(), "x"))

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		granted int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := ctrl.BeginNextPage(); ok {
				mu.Lock()
				granted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, granted)
}

func TestFetchNextPage_ErrorsClearFetching(t *testing.T) {
	tests := []struct {
		name string
		opt  github.MockClientOption
		want error
	}{
		{"api error", github.WithError(&github.APIError{StatusCode: 422, Message: "Validation Failed"}), scouterrors.ErrAPI},
		{"network failure", github.WithNetworkFailure(), scouterrors.ErrNetworkFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := github.NewMockClientWithOptions(github.WithPage(1, fullPage("p1", 60)))
			ctrl := search.NewController(mock)
			require.NoError(t, ctrl.Search(context.Background(), "x"))

			tt.opt(mock)
			started, err := ctrl.FetchNextPage(context.Background())
			assert.True(t, started)
			assert.ErrorIs(t, err, tt.want)

			state := ctrl.State()
			assert.False(t, state.Fetching)
			assert.False(t, state.EndOfResults)
			assert.Equal(t, 2, state.Page)
			assert.Len(t, ctrl.Snapshot().Users, 20)
		})
	}
}

func TestSearch_OrphansOutstandingPage(t *testing.T) {
	mock := github.NewMockClientWithOptions(
		github.WithPage(1, fullPage("p1", 60)),
		github.WithPage(2, fullPage("p2", 60)),
	)
	ctrl := search.NewController(mock)
	require.NoError(t, ctrl.Search(context.Background(), "old"))

	req, ok := ctrl.BeginNextPage()
	require.True(t, ok)

	require.NoError(t, ctrl.Search(context.Background(), "new"))
	assert.False(t, ctrl.State().Fetching)

	require.NoError(t, ctrl.CompleteNextPage(req, fullPage("stale", 60), nil))

	snap := ctrl.Snapshot()
	assert.Len(t, snap.Users, 20)
	assert.Equal(t, "p1-1", snap.Users[0].Login)
	assert.Equal(t, 2, snap.State.Page)
}

func TestGetMoreInfo_OpenAndClose(t *testing.T) {
	octocat := &github.UserProfile{
		Login:       "octocat",
		Name:        "The Octocat",
		Location:    "San Francisco",
		Email:       "octocat@github.com",
		Blog:        "https://github.blog",
		Bio:         "mascot",
		PublicRepos: 8,
		AvatarURL:   "https://avatars.githubusercontent.com/u/583231",
		HTMLURL:     "https://github.com/octocat",
		CreatedAt:   time.Date(2011, time.January, 25, 18, 44, 36, 0, time.UTC),
		UpdatedAt:   time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC),
	}
	mock := github.NewMockClientWithOptions(github.WithProfile(octocat))
	ctrl := search.NewController(mock)

	require.NoError(t, ctrl.GetMoreInfo(context.Background(), "octocat"))

	snap := ctrl.Snapshot()
	assert.True(t, snap.ModalOpen)
	assert.Equal(t, *octocat, snap.Profile)

	ctrl.CloseModal()
	snap = ctrl.Snapshot()
	assert.False(t, snap.ModalOpen)
	assert.True(t, snap.Profile.IsZero())
	assert.Equal(t, github.UserProfile{}, snap.Profile)
}

func TestGetMoreInfo_ErrorLeavesModalClosed(t *testing.T) {
	mock := github.NewMockClientWithOptions()
	ctrl := search.NewController(mock)

	err := ctrl.GetMoreInfo(context.Background(), "ghost")
	assert.ErrorIs(t, err, scouterrors.ErrAPI)
	assert.False(t, ctrl.Snapshot().ModalOpen)
}

func TestCompleteMoreInfo_DropsProfileFromSupersededSearch(t *testing.T) {
	mock := github.NewMockClientWithOptions(
		github.WithPage(1, fullPage("a", 20)),
		github.WithProfile(&github.UserProfile{Login: "a-1", Name: "First"}),
	)
	ctrl := search.NewController(mock)
	require.NoError(t, ctrl.Search(context.Background(), "a"))

	req := ctrl.BeginMoreInfo("a-1")
	profile, err := mock.GetUser(context.Background(), req.Login)
	require.NoError(t, err)

	// A new search starts while the profile is on its way.
	require.NoError(t, ctrl.Search(context.Background(), "b"))

	require.NoError(t, ctrl.CompleteMoreInfo(req, profile, nil))
	snap := ctrl.Snapshot()
	assert.False(t, snap.ModalOpen)
	assert.True(t, snap.Profile.IsZero())

	// A stale failure is dropped as well.
	assert.NoError(t, ctrl.CompleteMoreInfo(req, nil, &github.APIError{StatusCode: 404, Message: "Not Found"}))

	// A lookup started under the current search still opens the modal.
	current := ctrl.BeginMoreInfo("a-1")
	require.NoError(t, ctrl.CompleteMoreInfo(current, profile, nil))
	assert.True(t, ctrl.Snapshot().ModalOpen)
}

func TestSnapshot_IsACopy(t *testing.T) {
	mock := github.NewMockClientWithOptions(github.WithPage(1, fullPage("a", 20)))
	ctrl := search.NewController(mock)
	require.NoError(t, ctrl.Search(context.Background(), "a"))

	snap := ctrl.Snapshot()
	snap.Users[0].Login = "mutated"

	assert.Equal(t, "a-1", ctrl.Snapshot().Users[0].Login)
}
