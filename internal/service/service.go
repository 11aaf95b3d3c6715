package service

import "github.com/inkstream/inkstream-go/internal/repository"

// The SQL repositories are the production implementations of the store
// interfaces; tests substitute in-memory fakes.
var (
	_ AccountStore  = (*repository.UserRepository)(nil)
	_ UserStore     = (*repository.UserRepository)(nil)
	_ ArticleStore  = (*repository.ArticleRepository)(nil)
	_ CategoryStore = (*repository.CategoryRepository)(nil)
	_ CommentStore  = (*repository.CommentRepository)(nil)
	_ OrderStore    = (*repository.OrderRepository)(nil)
)
