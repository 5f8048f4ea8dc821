package domain

import "time"

type PostCreationData struct {
	Content  string
	ThreadId ThreadId
	Owner    Username
}

type Post struct {
	Id       PostId
	ThreadId ThreadId
	Content  string
	Username Username
	Date     time.Time
}
