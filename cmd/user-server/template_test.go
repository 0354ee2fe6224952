package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"uk.co.dudmesh.usermanager/internal/model"
)

func TestTemplates(t *testing.T) {
	assert := assert.New(t)

	tmpl, err := NewTemplate("../../ui/views")
	assert.Nil(err)
	if tmpl == nil {
		t.FailNow()
	}
	defer tmpl.Close()

	picture := "/uploads/1700000000000.png"
	user := &model.User{
		ID:             "abc",
		CreatedAt:      time.Now(),
		Name:           "John <Doe>",
		Email:          "john@example.com",
		Age:            30,
		ProfilePicture: &picture,
	}

	for _, name := range []string{"register.html", "login.html"} {
		buf := &bytes.Buffer{}
		assert.Nil(tmpl.Render(buf, name, nil, nil), name)
		assert.Contains(buf.String(), "<form", name)
	}

	for _, name := range []string{"update.html", "profile.html"} {
		buf := &bytes.Buffer{}
		assert.Nil(tmpl.Render(buf, name, user, nil), name)
		assert.Contains(buf.String(), picture, name)
		assert.Contains(buf.String(), "John &lt;Doe&gt;", name)
	}

	buf := &bytes.Buffer{}
	err = tmpl.Render(buf, "index.html", map[string]interface{}{
		"Users":  []*model.User{user},
		"User":   "John",
		"Search": "jo",
		"SortBy": "age",
		"Order":  model.SortDescending,
	}, nil)
	assert.Nil(err)
	assert.Contains(buf.String(), "/users/delete/abc")
	assert.Contains(buf.String(), `value="jo"`)
}
