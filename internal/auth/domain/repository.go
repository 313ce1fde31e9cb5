package domain

import "context"

type Repository interface {
	FindEmployeeByToken(ctx context.Context, token string) (*Employee, error)
}
