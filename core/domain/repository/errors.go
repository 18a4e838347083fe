package repository

import "errors"

var (
	// 题目相关错误
	ErrProblemNotFound = errors.New("problem not found or expired")
	ErrProblemAnswered = errors.New("problem already answered")

	// 预生成题库相关错误
	ErrPoolEmpty = errors.New("problem pool is empty")
)
