package seeder

import "github.com/google/uuid"

// DemoUser is an account to seed in development environments
type DemoUser struct {
	ID       uuid.UUID
	Subject  string
	Email    string
	Username string
	Display  string
}

// DemoBlog is a blog to seed in development environments
type DemoBlog struct {
	ID      uuid.UUID
	Title   string
	Body    string
	Excerpt string
	Slug    string
	Status  string
	Author  uuid.UUID
}

// Fixed IDs keep the seeder idempotent across restarts.
var (
	demoWriterID = uuid.MustParse("7f9c24e8-3b12-4a6e-9b1f-d2e4a0c81234")
	demoReaderID = uuid.MustParse("b3d49a02-6c7e-4f18-8a5d-10fe2bc95678")
)

// DemoUsers defines the development accounts
var DemoUsers = []DemoUser{
	{
		ID:       demoWriterID,
		Subject:  "dev|demo-writer",
		Email:    "writer@storyspace.dev",
		Username: "demo_writer",
		Display:  "Demo Writer",
	},
	{
		ID:       demoReaderID,
		Subject:  "dev|demo-reader",
		Email:    "reader@storyspace.dev",
		Username: "demo_reader",
		Display:  "Demo Reader",
	},
}

// DemoBlogs defines the development content: one public post everyone
// can see and one private draft only its owner can see, so the
// visibility rules are demonstrable straight after seeding.
var DemoBlogs = []DemoBlog{
	{
		ID:      uuid.MustParse("c1a2b3d4-e5f6-4a7b-8c9d-0e1f2a3b4c5d"),
		Title:   "Welcome to Storyspace",
		Body:    "<p>This is a public post. Anyone browsing the site can read it.</p>",
		Excerpt: "A public welcome post.",
		Slug:    "welcome-to-storyspace",
		Status:  "public",
		Author:  demoWriterID,
	},
	{
		ID:      uuid.MustParse("d2b3c4e5-f6a7-4b8c-9d0e-1f2a3b4c5d6e"),
		Title:   "Unfinished Draft",
		Body:    "<p>Still working on this one. Only the owner should ever see it.</p>",
		Excerpt: "A private draft.",
		Slug:    "unfinished-draft",
		Status:  "private",
		Author:  demoWriterID,
	},
}
