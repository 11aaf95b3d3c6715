package handler

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/inkstream/inkstream-go/internal/model"
	"github.com/inkstream/inkstream-go/internal/repository"
)

// fakeUserStore covers both the account and social-graph slices of the user
// repository. Follow edges are recorded so tests can assert no mutation
// happened.
type fakeUserStore struct {
	users   map[string]*model.User
	follows map[string]bool
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		users:   make(map[string]*model.User),
		follows: make(map[string]bool),
	}
}

func (f *fakeUserStore) add(email, displayName string) *model.User {
	user := &model.User{
		ID:          uuid.NewString(),
		Email:       email,
		DisplayName: displayName,
	}
	f.users[user.ID] = user
	return user
}

func (f *fakeUserStore) Create(_ context.Context, user *model.User) error {
	for _, existing := range f.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return repository.ErrDuplicateEmail
		}
	}
	user.ID = uuid.NewString()
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, user := range f.users {
		if strings.EqualFold(user.Email, email) {
			found := *user
			return &found, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserStore) GetByID(_ context.Context, id string) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	found := *user
	return &found, nil
}

func (f *fakeUserStore) UpdatePassword(_ context.Context, id, passwordHash string) error {
	user, ok := f.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	return nil
}

func (f *fakeUserStore) UpdateProfile(_ context.Context, id string, req model.UpdateUserRequest) error {
	user, ok := f.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	if req.DisplayName != nil {
		user.DisplayName = *req.DisplayName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	return nil
}

func (f *fakeUserStore) Follow(_ context.Context, followerID, followingID string) error {
	f.follows[followerID+"/"+followingID] = true
	return nil
}

func (f *fakeUserStore) Unfollow(_ context.Context, followerID, followingID string) error {
	delete(f.follows, followerID+"/"+followingID)
	return nil
}

func (f *fakeUserStore) Followers(context.Context, string) ([]model.FollowerInfo, error) {
	return nil, nil
}

func (f *fakeUserStore) Followings(context.Context, string) ([]model.FollowerInfo, error) {
	return nil, nil
}

func (f *fakeUserStore) IsSubscribed(_ context.Context, subscriberID, creatorID string) (bool, error) {
	return f.follows["sub:"+subscriberID+"/"+creatorID], nil
}

func (f *fakeUserStore) SubscriptionCounts(context.Context, string) (int, int, error) {
	return 0, 0, nil
}

func (f *fakeUserStore) ListCreators(context.Context, model.Pagination, string, string) ([]model.Creator, error) {
	return nil, nil
}

// fakeArticleStore keeps articles in memory with like tracking.
type fakeArticleStore struct {
	articles map[string]*model.Article
	likes    map[string]bool
}

func newFakeArticleStore() *fakeArticleStore {
	return &fakeArticleStore{
		articles: make(map[string]*model.Article),
		likes:    make(map[string]bool),
	}
}

func (f *fakeArticleStore) add(article model.Article) *model.Article {
	if article.ID == "" {
		article.ID = uuid.NewString()
	}
	f.articles[article.ID] = &article
	return &article
}

func (f *fakeArticleStore) Create(_ context.Context, article *model.Article) error {
	article.ID = uuid.NewString()
	stored := *article
	f.articles[article.ID] = &stored
	return nil
}

func (f *fakeArticleStore) GetByID(_ context.Context, id string) (*model.Article, error) {
	article, ok := f.articles[id]
	if !ok {
		return nil, repository.ErrArticleNotFound
	}
	found := *article
	return &found, nil
}

func (f *fakeArticleStore) Update(_ context.Context, creatorID, articleID string, req model.UpdateArticleRequest, _ string) error {
	article, ok := f.articles[articleID]
	if !ok || article.CreatorID != creatorID {
		return repository.ErrArticleNotFound
	}
	if req.Title != nil {
		article.Title = *req.Title
	}
	return nil
}

func (f *fakeArticleStore) Delete(_ context.Context, creatorID, articleID string) error {
	article, ok := f.articles[articleID]
	if !ok || article.CreatorID != creatorID {
		return repository.ErrArticleNotFound
	}
	delete(f.articles, articleID)
	return nil
}

func (f *fakeArticleStore) List(context.Context, model.ArticleListParams) ([]model.Article, error) {
	return nil, nil
}

func (f *fakeArticleStore) ListByCreator(context.Context, string) ([]model.Article, error) {
	return nil, nil
}

func (f *fakeArticleStore) ListHot(context.Context, int) ([]model.Article, error) {
	return nil, nil
}

func (f *fakeArticleStore) IsLiked(_ context.Context, userID, articleID string) (bool, error) {
	return f.likes[userID+"/"+articleID], nil
}

func (f *fakeArticleStore) Like(_ context.Context, userID, articleID string) error {
	key := userID + "/" + articleID
	if f.likes[key] {
		return repository.ErrAlreadyLiked
	}
	f.likes[key] = true
	f.articles[articleID].Likes++
	return nil
}

func (f *fakeArticleStore) Unlike(_ context.Context, userID, articleID string) error {
	key := userID + "/" + articleID
	if !f.likes[key] {
		return repository.ErrNotLiked
	}
	delete(f.likes, key)
	f.articles[articleID].Likes--
	return nil
}

// fakeCategoryStore keeps categories in memory, unique by name.
type fakeCategoryStore struct {
	categories map[string]*model.Category
}

func newFakeCategoryStore() *fakeCategoryStore {
	return &fakeCategoryStore{categories: make(map[string]*model.Category)}
}

func (f *fakeCategoryStore) Create(_ context.Context, category *model.Category) error {
	for _, existing := range f.categories {
		if existing.Name == category.Name {
			return repository.ErrDuplicateCategory
		}
	}
	category.ID = uuid.NewString()
	stored := *category
	f.categories[category.ID] = &stored
	return nil
}

func (f *fakeCategoryStore) GetByName(_ context.Context, name string) (*model.Category, error) {
	for _, category := range f.categories {
		if category.Name == name {
			found := *category
			return &found, nil
		}
	}
	return nil, repository.ErrCategoryNotFound
}

func (f *fakeCategoryStore) List(context.Context) ([]model.Category, error) {
	return nil, nil
}

func (f *fakeCategoryStore) Update(_ context.Context, id string, req model.CategoryRequest) error {
	category, ok := f.categories[id]
	if !ok {
		return repository.ErrCategoryNotFound
	}
	category.Name = req.Name
	category.Path = req.Path
	category.Description = req.Description
	return nil
}

func (f *fakeCategoryStore) Delete(_ context.Context, id string) error {
	if _, ok := f.categories[id]; !ok {
		return repository.ErrCategoryNotFound
	}
	delete(f.categories, id)
	return nil
}

// fakeCommentStore keeps comments in memory.
type fakeCommentStore struct {
	comments map[string]*model.Comment
}

func newFakeCommentStore() *fakeCommentStore {
	return &fakeCommentStore{comments: make(map[string]*model.Comment)}
}

func (f *fakeCommentStore) Create(_ context.Context, userID, articleID, content string) error {
	comment := &model.Comment{
		ID:        uuid.NewString(),
		ArticleID: articleID,
		UserID:    userID,
		Content:   content,
	}
	f.comments[comment.ID] = comment
	return nil
}

func (f *fakeCommentStore) ListByArticle(_ context.Context, articleID string) ([]model.Comment, error) {
	var out []model.Comment
	for _, comment := range f.comments {
		if comment.ArticleID == articleID {
			out = append(out, *comment)
		}
	}
	return out, nil
}

func (f *fakeCommentStore) Update(_ context.Context, userID, commentID, content string) error {
	comment, ok := f.comments[commentID]
	if !ok || comment.UserID != userID {
		return repository.ErrCommentNotFound
	}
	comment.Content = content
	return nil
}

func (f *fakeCommentStore) Delete(_ context.Context, userID, commentID string) error {
	comment, ok := f.comments[commentID]
	if !ok || comment.UserID != userID {
		return repository.ErrCommentNotFound
	}
	delete(f.comments, commentID)
	return nil
}
