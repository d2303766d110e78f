package entity

// All returns every persisted model in migration order.
func All() []any {
	return []any{
		&User{}, &Agent{}, &UserOTP{},
		&Department{}, &Category{}, &SubCategory{}, &Country{},
		&Chat{}, &ChatGroup{}, &ChatDetails{}, &ChatParticipant{}, &Message{},
		&Transaction{},
	}
}
