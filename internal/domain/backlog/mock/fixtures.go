package mock

import backlog "github.com/backlogbot/backlog-bot/internal/domain/backlog"

var Catalog = []backlog.GameSummary{
	{AppID: 400, Name: "Portal"},
	{AppID: 620, Name: "Portal 2"},
	{AppID: 1, Name: "Unrelated"},
}

func ptr(s string) *string { return &s }

var Details = map[int]*backlog.GameDetail{
	400: {
		AppID:             400,
		Name:              "Portal",
		ShortDescription:  "A puzzle game.",
		HeaderImage:       "https://cdn.example/400/header.jpg",
		Price:             ptr("$9.99"),
		ControllerSupport: "full",
	},
	620: {
		AppID:            620,
		Name:             "Portal 2",
		ShortDescription: "The sequel.",
		HeaderImage:      "https://cdn.example/620/header.jpg",
		Price:            ptr("$19.99"),
	},
	1: {
		AppID:       1,
		Name:        "Unrelated",
		HeaderImage: "https://cdn.example/1/header.jpg",
		IsFree:      true,
	},
}
