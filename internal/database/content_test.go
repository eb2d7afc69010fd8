package database

import (
	"context"
	"fmt"
	"testing"

	"github.com/ghinaaj20-lang/luna-project/internal/utils"
	"github.com/ghinaaj20-lang/luna-project/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestUser(t *testing.T, db *DB, username string) *models.User {
	t.Helper()
	user, err := db.CreateUser(context.Background(), username, username+"@x.com", "password123", "")
	require.NoError(t, err)
	return user
}

func createTestContent(t *testing.T, db *DB, author uuid.UUID) *models.Content {
	t.Helper()
	content := &models.Content{
		AuthorID:    author,
		ContentType: models.ContentTypePhoto,
		Title:       "Waxing gibbous",
		Category:    models.CategoryMoon,
	}
	require.NoError(t, db.CreateContent(context.Background(), content))
	return content
}

func TestLikeIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	author := createTestUser(t, db, "author")
	fan := createTestUser(t, db, "fan")
	content := createTestContent(t, db, author.ID)

	created, err := db.Like(ctx, fan.ID, content.ID)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = db.Like(ctx, fan.ID, content.ID)
	require.NoError(t, err)
	assert.False(t, created)

	got, err := db.GetContent(ctx, content.ID)
	require.NoError(t, err)
	assert.Len(t, got.Likes, 1)
}

func TestUnlikeMissingIsNoop(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	author := createTestUser(t, db, "author")
	fan := createTestUser(t, db, "fan")
	content := createTestContent(t, db, author.ID)

	require.NoError(t, db.Unlike(ctx, fan.ID, content.ID))

	_, err := db.Like(ctx, fan.ID, content.ID)
	require.NoError(t, err)
	require.NoError(t, db.Unlike(ctx, fan.ID, content.ID))

	got, err := db.GetContent(ctx, content.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Likes)
}

func TestDeleteContentCascades(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	author := createTestUser(t, db, "author")
	fan := createTestUser(t, db, "fan")
	content := createTestContent(t, db, author.ID)

	_, err := db.Like(ctx, fan.ID, content.ID)
	require.NoError(t, err)
	comment, err := db.AddComment(ctx, fan.ID, content.ID, "Stunning detail", nil)
	require.NoError(t, err)
	_, err = db.AddComment(ctx, author.ID, content.ID, "Thanks!", &comment.ID)
	require.NoError(t, err)

	require.NoError(t, db.DeleteContent(ctx, content.ID))

	_, err = db.GetContent(ctx, content.ID)
	assert.True(t, utils.IsErrorCode(err, utils.ErrNotFound))
	_, err = db.GetComment(ctx, comment.ID)
	assert.True(t, utils.IsErrorCode(err, utils.ErrNotFound))
}

func TestAddCommentForeignParentDropped(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	author := createTestUser(t, db, "author")
	content := createTestContent(t, db, author.ID)
	other := createTestContent(t, db, author.ID)

	foreign, err := db.AddComment(ctx, author.ID, other.ID, "On the other thread", nil)
	require.NoError(t, err)

	comment, err := db.AddComment(ctx, author.ID, content.ID, "Reply attempt", &foreign.ID)
	require.NoError(t, err)
	assert.Nil(t, comment.ParentID, "parent from a different content must be dropped")
	assert.False(t, comment.IsReply())
}

func TestAddCommentReply(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	author := createTestUser(t, db, "author")
	content := createTestContent(t, db, author.ID)

	top, err := db.AddComment(ctx, author.ID, content.ID, "First", nil)
	require.NoError(t, err)
	reply, err := db.AddComment(ctx, author.ID, content.ID, "Replying", &top.ID)
	require.NoError(t, err)

	require.NotNil(t, reply.ParentID)
	assert.Equal(t, top.ID, *reply.ParentID)
	assert.True(t, reply.IsReply())
}

func TestDeleteCommentCascadesReplies(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	author := createTestUser(t, db, "author")
	content := createTestContent(t, db, author.ID)

	top, err := db.AddComment(ctx, author.ID, content.ID, "Top", nil)
	require.NoError(t, err)
	reply, err := db.AddComment(ctx, author.ID, content.ID, "Reply", &top.ID)
	require.NoError(t, err)
	nested, err := db.AddComment(ctx, author.ID, content.ID, "Nested", &reply.ID)
	require.NoError(t, err)
	sibling, err := db.AddComment(ctx, author.ID, content.ID, "Sibling", nil)
	require.NoError(t, err)

	require.NoError(t, db.DeleteComment(ctx, top.ID))

	for _, id := range []uuid.UUID{top.ID, reply.ID, nested.ID} {
		_, err := db.GetComment(ctx, id)
		assert.True(t, utils.IsErrorCode(err, utils.ErrNotFound))
	}
	_, err = db.GetComment(ctx, sibling.ID)
	assert.NoError(t, err)
}

func TestListContentOrderingAndPagination(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	author := createTestUser(t, db, "author")
	other := createTestUser(t, db, "other")

	for i := 0; i < 12; i++ {
		content := &models.Content{
			AuthorID:    author.ID,
			ContentType: models.ContentTypeArticle,
			Title:       fmt.Sprintf("Observation log %d", i),
			Category:    models.CategoryObservation,
		}
		require.NoError(t, db.CreateContent(ctx, content))
	}
	createTestContent(t, db, other.ID)

	contents, total, err := db.ListContent(ctx, nil, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 13, total)
	require.Len(t, contents, 10)
	for i := 1; i < len(contents); i++ {
		assert.False(t, contents[i].CreatedAt.After(contents[i-1].CreatedAt), "expected newest-first ordering")
	}

	secondPage, _, err := db.ListContent(ctx, nil, 2, 10)
	require.NoError(t, err)
	assert.Len(t, secondPage, 3)

	mine, total, err := db.ListContent(ctx, &author.ID, 1, 50)
	require.NoError(t, err)
	assert.EqualValues(t, 12, total)
	for _, c := range mine {
		assert.Equal(t, author.ID, c.AuthorID)
	}
}

func TestUpdateContentKeepsAuthor(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	author := createTestUser(t, db, "author")
	content := createTestContent(t, db, author.ID)

	title := "Retitled"
	category := models.CategoryGalaxy
	updated, err := db.UpdateContent(ctx, content.ID, ContentUpdate{Title: &title, Category: &category})
	require.NoError(t, err)

	assert.Equal(t, "Retitled", updated.Title)
	assert.Equal(t, models.CategoryGalaxy, updated.Category)
	assert.Equal(t, author.ID, updated.AuthorID)

	bad := models.Category("blackhole")
	_, err = db.UpdateContent(ctx, content.ID, ContentUpdate{Category: &bad})
	assert.True(t, utils.IsErrorCode(err, utils.ErrInvalidInput))
}

func TestProfileStats(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	author := createTestUser(t, db, "author")
	fan := createTestUser(t, db, "fan")

	first := createTestContent(t, db, author.ID)
	second := createTestContent(t, db, author.ID)

	_, err := db.Like(ctx, fan.ID, first.ID)
	require.NoError(t, err)
	_, err = db.Like(ctx, fan.ID, second.ID)
	require.NoError(t, err)
	_, err = db.AddComment(ctx, fan.ID, first.ID, "Nice", nil)
	require.NoError(t, err)

	stats, err := db.GetProfileStats(ctx, author.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.ContentsCount)
	assert.EqualValues(t, 2, stats.TotalLikes)
	assert.EqualValues(t, 1, stats.TotalComments)

	fanStats, err := db.GetProfileStats(ctx, fan.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, fanStats.ContentsCount)
	assert.EqualValues(t, 0, fanStats.TotalLikes)
}
