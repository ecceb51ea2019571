// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package volume

import (
	"context"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

// 🔧 MockLister is a mock implementation of Lister
type MockLister struct {
	mock.Mock
}

func (m *MockLister) ListVolumes(ctx context.Context) ([]Volume, error) {
	args := m.Called(ctx)
	vols, _ := args.Get(0).([]Volume)
	return vols, args.Error(1)
}

func testContext() context.Context {
	return zerolog.New(io.Discard).WithContext(context.Background())
}

func strPtr(s string) *string { return &s }

var testVolumes = []Volume{
	{Path: "C:", Serial: "0000C0DE", Label: "SYSTEM"},
	{Path: "E:", Serial: "AAAA1111", Label: "KINGSTON"},
	{Path: "F:", Serial: "BBBB2222", Label: "BACKUP"},
}

func TestDirectoryCachesFirstQuery(t *testing.T) {
	ctx := testContext()
	lister := &MockLister{}
	lister.On("ListVolumes", mock.Anything).Return(testVolumes, nil).Once()

	dir := NewDirectory(lister)
	assert.False(t, dir.Cached(), "directory should start uncached")

	first, err := dir.Volumes(ctx)
	require.NoError(t, err)
	assert.True(t, dir.Cached(), "directory should be cached after first query")

	second, err := dir.Volumes(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second, "cached snapshot should be reused")

	lister.AssertNumberOfCalls(t, "ListVolumes", 1)
}

func TestDirectoryQueryFailure(t *testing.T) {
	ctx := testContext()
	lister := &MockLister{}
	lister.On("ListVolumes", mock.Anything).Return(nil, errors.New("wmi unavailable"))

	dir := NewDirectory(lister)
	_, err := dir.Volumes(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrQuery, "query failure should be marked fatal")
	assert.Contains(t, err.Error(), "wmi unavailable")
	assert.False(t, dir.Cached(), "failed query should not be cached")
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		criteria  Criteria
		want      string
		wantTried []string
	}{
		{
			name:     "serial_match",
			criteria: Criteria{Serial: strPtr("AAAA1111")},
			want:     "E:",
		},
		{
			name:     "name_match",
			criteria: Criteria{Name: strPtr("BACKUP")},
			want:     "F:",
		},
		{
			name:     "serial_wins_over_name",
			criteria: Criteria{Serial: strPtr("BBBB2222"), Name: strPtr("KINGSTON")},
			want:     "F:",
		},
		{
			name:     "falls_back_to_name",
			criteria: Criteria{Serial: strPtr("DEADBEEF"), Name: strPtr("KINGSTON")},
			want:     "E:",
		},
		{
			name:      "name_only_no_match",
			criteria:  Criteria{Name: strPtr("NOPE")},
			wantTried: []string{"name: NOPE"},
		},
		{
			name:      "both_no_match",
			criteria:  Criteria{Serial: strPtr("DEADBEEF"), Name: strPtr("NOPE")},
			wantTried: []string{"serial: DEADBEEF", "name: NOPE"},
		},
		{
			name:      "no_fuzzy_matching",
			criteria:  Criteria{Serial: strPtr("aaaa1111"), Name: strPtr("KINGST")},
			wantTried: []string{"serial: aaaa1111", "name: KINGST"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lister := &MockLister{}
			lister.On("ListVolumes", mock.Anything).Return(testVolumes, nil)
			resolver := NewResolver(NewDirectory(lister))

			got, err := resolver.Resolve(testContext(), tt.criteria)
			if tt.wantTried != nil {
				require.Error(t, err)
				var notFound *DriveNotFoundError
				require.True(t, errors.As(err, &notFound), "error should be DriveNotFoundError")
				assert.Equal(t, tt.wantTried, notFound.Tried)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolvePropagatesQueryFailure(t *testing.T) {
	lister := &MockLister{}
	lister.On("ListVolumes", mock.Anything).Return(nil, errors.New("boom"))

	_, err := NewResolver(NewDirectory(lister)).Resolve(testContext(), Criteria{Serial: strPtr("AAAA1111")})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrQuery)

	var notFound *DriveNotFoundError
	assert.False(t, errors.As(err, &notFound), "query failure is not a missing drive")
}

func TestDriveNotFoundErrorMessage(t *testing.T) {
	err := &DriveNotFoundError{Tried: []string{"serial: AAAA1111", "name: USB"}}
	assert.Equal(t, "couldn't find drive, tried: serial: AAAA1111, name: USB", err.Error())
}
