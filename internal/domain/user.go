package domain

type User struct {
	Username Username
}
