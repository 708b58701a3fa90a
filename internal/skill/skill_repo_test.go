package skill_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parthsharma-2/skillswap/internal/skill"
	"github.com/parthsharma-2/skillswap/internal/testutil"
)

func TestApplyUserSkillBatchRollsBackOnDuplicate(t *testing.T) {
	db := testutil.OpenDB(t)
	repo := skill.NewSkillRepository(db)

	alice := testutil.CreateUser(t, db, "alice")
	guitar := testutil.CreateSkill(t, db, "Guitar", nil)
	chess := testutil.CreateSkill(t, db, "Chess", nil)

	testutil.ListSkill(t, db, alice.ID, guitar.ID, skill.RoleOffer)

	// A valid new row followed by a duplicate of the existing listing. The
	// valid row must not survive the rollback.
	err := repo.ApplyUserSkillBatch(alice.ID, []skill.UserSkillEntry{
		{SkillID: chess.ID, Role: skill.RoleOffer, Proficiency: skill.ProficiencyBeginner},
		{SkillID: guitar.ID, Role: skill.RoleOffer, Proficiency: skill.ProficiencyExpert},
	})
	require.ErrorIs(t, err, skill.ErrDuplicateUserSkill)

	n, err := repo.CountUserSkills(alice.ID, skill.RoleOffer)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n, "failed batch must leave no partial write")
}

func TestApplyUserSkillBatchMixedOperations(t *testing.T) {
	db := testutil.OpenDB(t)
	repo := skill.NewSkillRepository(db)

	alice := testutil.CreateUser(t, db, "alice")
	guitar := testutil.CreateSkill(t, db, "Guitar", nil)
	chess := testutil.CreateSkill(t, db, "Chess", nil)
	piano := testutil.CreateSkill(t, db, "Piano", nil)

	toDelete := testutil.ListSkill(t, db, alice.ID, guitar.ID, skill.RoleOffer)
	toUpdate := testutil.ListSkill(t, db, alice.ID, chess.ID, skill.RoleOffer)

	err := repo.ApplyUserSkillBatch(alice.ID, []skill.UserSkillEntry{
		{ID: toDelete.ID, Delete: true},
		{ID: toUpdate.ID, SkillID: chess.ID, Role: skill.RoleOffer, Proficiency: skill.ProficiencyExpert, ExperienceYears: 4},
		{SkillID: piano.ID, Role: skill.RoleSeek, Proficiency: skill.ProficiencyBeginner},
	})
	require.NoError(t, err)

	listings, err := repo.GetUserSkills(alice.ID)
	require.NoError(t, err)
	require.Len(t, listings, 2)

	updated, err := repo.GetUserSkillByID(toUpdate.ID)
	require.NoError(t, err)
	assert.Equal(t, skill.ProficiencyExpert, updated.Proficiency)
	assert.EqualValues(t, 4, updated.ExperienceYears)

	seeks, err := repo.GetUserSkillsByRole(alice.ID, skill.RoleSeek)
	require.NoError(t, err)
	require.Len(t, seeks, 1)
	assert.Equal(t, piano.ID, seeks[0].SkillID)
}

func TestApplyUserSkillBatchDeleteThenReAdd(t *testing.T) {
	db := testutil.OpenDB(t)
	repo := skill.NewSkillRepository(db)

	alice := testutil.CreateUser(t, db, "alice")
	guitar := testutil.CreateSkill(t, db, "Guitar", nil)

	existing := testutil.ListSkill(t, db, alice.ID, guitar.ID, skill.RoleOffer)

	// Removing and re-adding the same triple in one submission is legal.
	err := repo.ApplyUserSkillBatch(alice.ID, []skill.UserSkillEntry{
		{ID: existing.ID, Delete: true},
		{SkillID: guitar.ID, Role: skill.RoleOffer, Proficiency: skill.ProficiencyAdvanced},
	})
	require.NoError(t, err)

	listings, err := repo.GetUserSkillsByRole(alice.ID, skill.RoleOffer)
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, skill.ProficiencyAdvanced, listings[0].Proficiency)
	assert.NotEqual(t, existing.ID, listings[0].ID)
}

func TestApplyUserSkillBatchSameSkillBothRoles(t *testing.T) {
	db := testutil.OpenDB(t)
	repo := skill.NewSkillRepository(db)

	alice := testutil.CreateUser(t, db, "alice")
	guitar := testutil.CreateSkill(t, db, "Guitar", nil)

	err := repo.ApplyUserSkillBatch(alice.ID, []skill.UserSkillEntry{
		{SkillID: guitar.ID, Role: skill.RoleOffer, Proficiency: skill.ProficiencyExpert},
		{SkillID: guitar.ID, Role: skill.RoleSeek, Proficiency: skill.ProficiencyBeginner},
	})
	require.NoError(t, err)

	listings, err := repo.GetUserSkills(alice.ID)
	require.NoError(t, err)
	assert.Len(t, listings, 2, "one listing per role is allowed for the same skill")
}

func TestDeleteSkillInUse(t *testing.T) {
	db := testutil.OpenDB(t)
	repo := skill.NewSkillRepository(db)

	alice := testutil.CreateUser(t, db, "alice")
	guitar := testutil.CreateSkill(t, db, "Guitar", nil)
	testutil.ListSkill(t, db, alice.ID, guitar.ID, skill.RoleOffer)

	err := repo.DeleteSkill(guitar.ID)
	assert.ErrorIs(t, err, skill.ErrSkillInUse)

	_, err = repo.GetSkillByID(guitar.ID)
	assert.NoError(t, err)
}

func TestDeleteCategoryDetachesSkills(t *testing.T) {
	db := testutil.OpenDB(t)
	repo := skill.NewSkillRepository(db)

	music := testutil.CreateCategory(t, db, "Music")
	guitar := testutil.CreateSkill(t, db, "Guitar", &music.ID)

	require.NoError(t, repo.DeleteCategory(music.ID))

	got, err := repo.GetSkillByID(guitar.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CategoryID, "skills survive their category")

	_, err = repo.GetCategoryByID(music.ID)
	assert.Error(t, err)
}
