package model

// All lists every persisted model, in migration order.
func All() []interface{} {
	return []interface{}{
		&Company{},
		&Profile{},
		&Subscription{},
		&Professional{},
		&Client{},
		&Service{},
		&Appointment{},
		&Transaction{},
	}
}
