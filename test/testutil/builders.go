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

package testutil

import (
	"fmt"
	"time"
)

// UserBuilder provides a fluent API for creating test users in the shape
// the GitHub REST API returns them.
type UserBuilder struct {
	login       string
	id          int
	name        string
	location    string
	email       string
	bio         string
	blog        string
	company     string
	publicRepos int
	followers   int
	createdAt   time.Time
	updatedAt   time.Time
}

// NewUserBuilder creates a user builder with defaults
func NewUserBuilder(login string) *UserBuilder {
	created := time.Date(2015, time.March, 4, 10, 0, 0, 0, time.UTC)
	return &UserBuilder{
		login:       login,
		id:          len(login) * 1000,
		name:        fmt.Sprintf("User %s", login),
		publicRepos: 3,
		createdAt:   created,
		updatedAt:   created.AddDate(5, 0, 0),
	}
}

// WithID sets the numeric user ID
func (b *UserBuilder) WithID(id int) *UserBuilder {
	b.id = id
	return b
}

// WithName sets the display name
func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.name = name
	return b
}

// WithLocation sets the location
func (b *UserBuilder) WithLocation(location string) *UserBuilder {
	b.location = location
	return b
}

// WithEmail sets the public email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// WithBio sets the bio
func (b *UserBuilder) WithBio(bio string) *UserBuilder {
	b.bio = bio
	return b
}

// WithBlog sets the blog URL
func (b *UserBuilder) WithBlog(blog string) *UserBuilder {
	b.blog = blog
	return b
}

// WithCompany sets the company
func (b *UserBuilder) WithCompany(company string) *UserBuilder {
	b.company = company
	return b
}

// WithPublicRepos sets the public repository count
func (b *UserBuilder) WithPublicRepos(n int) *UserBuilder {
	b.publicRepos = n
	return b
}

// WithFollowers sets the follower count
func (b *UserBuilder) WithFollowers(n int) *UserBuilder {
	b.followers = n
	return b
}

// WithCreatedAt sets the join date
func (b *UserBuilder) WithCreatedAt(t time.Time) *UserBuilder {
	b.createdAt = t
	return b
}

// WithUpdatedAt sets the last update date
func (b *UserBuilder) WithUpdatedAt(t time.Time) *UserBuilder {
	b.updatedAt = t
	return b
}

// Login returns the login of the user being built
func (b *UserBuilder) Login() string {
	return b.login
}

// BuildSummary returns the search item for the user
func (b *UserBuilder) BuildSummary() map[string]interface{} {
	return map[string]interface{}{
		"login":      b.login,
		"id":         b.id,
		"avatar_url": fmt.Sprintf("https://avatars.githubusercontent.com/u/%d?v=4", b.id),
		"html_url":   "https://github.com/" + b.login,
		"type":       "User",
		"score":      1.0,
	}
}

// BuildProfile returns the /users/<login> response for the user. Unset
// optional fields are null, as GitHub sends them.
func (b *UserBuilder) BuildProfile() map[string]interface{} {
	profile := b.BuildSummary()
	delete(profile, "score")
	profile["name"] = nullable(b.name)
	profile["location"] = nullable(b.location)
	profile["email"] = nullable(b.email)
	profile["bio"] = nullable(b.bio)
	profile["blog"] = b.blog
	profile["company"] = nullable(b.company)
	profile["twitter_username"] = nil
	profile["public_repos"] = b.publicRepos
	profile["followers"] = b.followers
	profile["following"] = 0
	profile["created_at"] = b.createdAt.Format(time.RFC3339)
	profile["updated_at"] = b.updatedAt.Format(time.RFC3339)
	return profile
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// GenerateUsers creates n builders with logins prefix1 .. prefixN
func GenerateUsers(prefix string, n int) []*UserBuilder {
	users := make([]*UserBuilder, 0, n)
	for i := 1; i <= n; i++ {
		users = append(users, NewUserBuilder(fmt.Sprintf("%s%d", prefix, i)).WithID(i))
	}
	return users
}

// SearchResponse builds a /search/users response body
func SearchResponse(totalCount int, users []*UserBuilder) map[string]interface{} {
	items := make([]map[string]interface{}, 0, len(users))
	for _, u := range users {
		items = append(items, u.BuildSummary())
	}
	return map[string]interface{}{
		"total_count":        totalCount,
		"incomplete_results": false,
		"items":              items,
	}
}
