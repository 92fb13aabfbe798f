package repo

import (
	"context"
	"testing"
	"time"

	"github.com/AdventureDe/DuoChat/repo/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestFindOrCreate_DedupIsOrderIndependent(t *testing.T) {
	db := openTestDB(t)
	u1 := seedUser(t, db, "user1")
	u2 := seedUser(t, db, "user2")
	threads := NewThreadRepo(db)
	ctx := context.Background()

	first, err := threads.FindOrCreate(ctx, u1.ID, u2.ID)
	require.NoError(t, err)
	second, err := threads.FindOrCreate(ctx, u2.ID, u1.ID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)

	var cnt int64
	require.NoError(t, db.Model(&model.Thread{}).Count(&cnt).Error)
	assert.Equal(t, int64(1), cnt)
}

func TestFindOrCreate_RecoversWhenInsertLosesRace(t *testing.T) {
	db := openTestDB(t)
	u1 := seedUser(t, db, "user1")
	u2 := seedUser(t, db, "user2")
	threads := NewThreadRepo(db)

	// Sneak a rival row in after the lookup but before the insert, so the
	// insert hits the unique index and the re-read branch has to run.
	rival := &model.Thread{PeerA: u1.ID, PeerB: u2.ID}
	var raced bool
	err := db.Callback().Create().Before("gorm:create").Register("rival_insert", func(tx *gorm.DB) {
		if raced || tx.Statement.Table != "threads" {
			return
		}
		raced = true
		require.NoError(t, tx.Session(&gorm.Session{NewDB: true}).Create(rival).Error)
	})
	require.NoError(t, err)

	thread, err := threads.FindOrCreate(context.Background(), u1.ID, u2.ID)
	require.NoError(t, err)
	require.True(t, raced, "rival insert should have fired")
	assert.Equal(t, rival.ID, thread.ID, "the loser must return the winner's thread")

	var cnt int64
	require.NoError(t, db.Model(&model.Thread{}).Count(&cnt).Error)
	assert.Equal(t, int64(1), cnt)
}

func TestFindOrCreate_NormalizesPair(t *testing.T) {
	db := openTestDB(t)
	u1 := seedUser(t, db, "user1")
	u2 := seedUser(t, db, "user2")
	threads := NewThreadRepo(db)

	thread, err := threads.FindOrCreate(context.Background(), u2.ID, u1.ID)
	require.NoError(t, err)

	assert.Less(t, thread.PeerA, thread.PeerB)
	assert.True(t, thread.HasParticipant(u1.ID))
	assert.True(t, thread.HasParticipant(u2.ID))
}

func TestListByParticipant_OrdersByRecentActivity(t *testing.T) {
	db := openTestDB(t)
	u1 := seedUser(t, db, "user1")
	u2 := seedUser(t, db, "user2")
	u3 := seedUser(t, db, "user3")
	threads := NewThreadRepo(db)
	ctx := context.Background()

	older := seedThread(t, db, u1.ID, u2.ID)
	time.Sleep(5 * time.Millisecond)
	newer := seedThread(t, db, u1.ID, u3.ID)

	got, err := threads.ListByParticipant(ctx, u1.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, newer.ID, got[0].ID)
	assert.Equal(t, older.ID, got[1].ID)

	// touching the older thread moves it to the front
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, threads.Touch(db, older.ID))
	got, err = threads.ListByParticipant(ctx, u1.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, older.ID, got[0].ID)
}

func TestListByParticipant_UnknownUserIsEmpty(t *testing.T) {
	db := openTestDB(t)
	got, err := NewThreadRepo(db).ListByParticipant(context.Background(), 9999)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUpdateParticipants_ReplacesPair(t *testing.T) {
	db := openTestDB(t)
	u1 := seedUser(t, db, "user1")
	u2 := seedUser(t, db, "user2")
	u3 := seedUser(t, db, "user3")
	threads := NewThreadRepo(db)

	thread := seedThread(t, db, u1.ID, u2.ID)
	updated, err := threads.UpdateParticipants(context.Background(), thread.ID, u3.ID, u1.ID)
	require.NoError(t, err)

	assert.Equal(t, thread.ID, updated.ID)
	assert.ElementsMatch(t, []int64{u1.ID, u3.ID}, updated.Participants())
}

func TestUpdateParticipants_MissingThread(t *testing.T) {
	db := openTestDB(t)
	_, err := NewThreadRepo(db).UpdateParticipants(context.Background(), 123, 1, 2)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDelete_CascadesMessages(t *testing.T) {
	db := openTestDB(t)
	u1 := seedUser(t, db, "user1")
	u2 := seedUser(t, db, "user2")
	threads := NewThreadRepo(db)
	messages := NewMessageRepo(db, threads)
	ctx := context.Background()

	thread := seedThread(t, db, u1.ID, u2.ID)
	require.NoError(t, messages.Create(ctx, &model.Message{ThreadID: thread.ID, SenderID: u1.ID, Text: "one"}))
	require.NoError(t, messages.Create(ctx, &model.Message{ThreadID: thread.ID, SenderID: u2.ID, Text: "two"}))

	require.NoError(t, threads.Delete(ctx, thread.ID))

	var cnt int64
	require.NoError(t, db.Model(&model.Message{}).Where("thread_id = ?", thread.ID).Count(&cnt).Error)
	assert.Equal(t, int64(0), cnt)
}

func TestDelete_MissingThread(t *testing.T) {
	db := openTestDB(t)
	err := NewThreadRepo(db).Delete(context.Background(), 42)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
