package marketplace_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parthsharma-2/skillswap/internal/marketplace"
	"github.com/parthsharma-2/skillswap/internal/skill"
	"github.com/parthsharma-2/skillswap/internal/testutil"
)

func TestFindMatchesReciprocal(t *testing.T) {
	db := testutil.OpenDB(t)
	repo := marketplace.NewMarketplaceRepository(db)

	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	carol := testutil.CreateUser(t, db, "carol")

	guitar := testutil.CreateSkill(t, db, "Guitar", nil)
	chess := testutil.CreateSkill(t, db, "Chess", nil)

	// Alice teaches guitar and wants chess.
	testutil.ListSkill(t, db, alice.ID, guitar.ID, skill.RoleOffer)
	testutil.ListSkill(t, db, alice.ID, chess.ID, skill.RoleSeek)

	// Bob teaches chess and wants guitar: a reciprocal match.
	testutil.ListSkill(t, db, bob.ID, chess.ID, skill.RoleOffer)
	testutil.ListSkill(t, db, bob.ID, guitar.ID, skill.RoleSeek)

	// Carol teaches chess but wants nothing Alice offers.
	testutil.ListSkill(t, db, carol.ID, chess.ID, skill.RoleOffer)

	matches, err := repo.FindMatches(alice.ID, marketplace.DefaultMatchLimit)
	require.NoError(t, err)
	require.Len(t, matches, 1)

	assert.Equal(t, bob.ID, matches[0].UserID)
	assert.Equal(t, "Chess", matches[0].Offer)
	assert.Equal(t, "Guitar", matches[0].Want)
	assert.Equal(t, "BO", matches[0].Initials)
}

func TestFindMatchesRequiresBothSides(t *testing.T) {
	db := testutil.OpenDB(t)
	repo := marketplace.NewMarketplaceRepository(db)

	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	guitar := testutil.CreateSkill(t, db, "Guitar", nil)
	chess := testutil.CreateSkill(t, db, "Chess", nil)

	// Alice only offers; she seeks nothing.
	testutil.ListSkill(t, db, alice.ID, guitar.ID, skill.RoleOffer)
	testutil.ListSkill(t, db, bob.ID, chess.ID, skill.RoleOffer)
	testutil.ListSkill(t, db, bob.ID, guitar.ID, skill.RoleSeek)

	matches, err := repo.FindMatches(alice.ID, marketplace.DefaultMatchLimit)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestFindMatchesNeverMatchesSelf(t *testing.T) {
	db := testutil.OpenDB(t)
	repo := marketplace.NewMarketplaceRepository(db)

	alice := testutil.CreateUser(t, db, "alice")
	guitar := testutil.CreateSkill(t, db, "Guitar", nil)
	chess := testutil.CreateSkill(t, db, "Chess", nil)

	// Alice both offers and seeks skills that would pair with themselves.
	testutil.ListSkill(t, db, alice.ID, guitar.ID, skill.RoleOffer)
	testutil.ListSkill(t, db, alice.ID, chess.ID, skill.RoleOffer)
	testutil.ListSkill(t, db, alice.ID, guitar.ID, skill.RoleSeek)
	testutil.ListSkill(t, db, alice.ID, chess.ID, skill.RoleSeek)

	matches, err := repo.FindMatches(alice.ID, marketplace.DefaultMatchLimit)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestFindMatchesHonorsLimit(t *testing.T) {
	db := testutil.OpenDB(t)
	repo := marketplace.NewMarketplaceRepository(db)

	alice := testutil.CreateUser(t, db, "alice")
	guitar := testutil.CreateSkill(t, db, "Guitar", nil)
	chess := testutil.CreateSkill(t, db, "Chess", nil)

	testutil.ListSkill(t, db, alice.ID, guitar.ID, skill.RoleOffer)
	testutil.ListSkill(t, db, alice.ID, chess.ID, skill.RoleSeek)

	for i := 0; i < 5; i++ {
		partner := testutil.CreateUser(t, db, fmt.Sprintf("partner%d", i))
		testutil.ListSkill(t, db, partner.ID, chess.ID, skill.RoleOffer)
		testutil.ListSkill(t, db, partner.ID, guitar.ID, skill.RoleSeek)
	}

	matches, err := repo.FindMatches(alice.ID, marketplace.DefaultMatchLimit)
	require.NoError(t, err)
	assert.Len(t, matches, marketplace.DefaultMatchLimit)
}

func TestBrowseOffersFilters(t *testing.T) {
	db := testutil.OpenDB(t)
	repo := marketplace.NewMarketplaceRepository(db)

	viewer := testutil.CreateUser(t, db, "viewer")
	bob := testutil.CreateUser(t, db, "bob")
	carol := testutil.CreateUser(t, db, "carol")

	music := testutil.CreateCategory(t, db, "Music")
	games := testutil.CreateCategory(t, db, "Games")
	guitar := testutil.CreateSkill(t, db, "Guitar", &music.ID)
	chess := testutil.CreateSkill(t, db, "Chess", &games.ID)

	// The viewer's own offer must never appear.
	testutil.ListSkill(t, db, viewer.ID, guitar.ID, skill.RoleOffer)
	guitarOffer := testutil.ListSkill(t, db, bob.ID, guitar.ID, skill.RoleOffer)
	chessOffer := testutil.ListSkill(t, db, carol.ID, chess.ID, skill.RoleOffer)
	// Seeks are not offers.
	testutil.ListSkill(t, db, carol.ID, guitar.ID, skill.RoleSeek)

	offers, err := repo.BrowseOffers(viewer.ID, "", "")
	require.NoError(t, err)
	require.Len(t, offers, 2)

	offers, err = repo.BrowseOffers(viewer.ID, fmt.Sprint(music.ID), "")
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, guitarOffer.ID, offers[0].ID)

	// Level filtering is case-insensitive; "any" disables it.
	offers, err = repo.BrowseOffers(viewer.ID, "all", "INTERMEDIATE")
	require.NoError(t, err)
	assert.Len(t, offers, 2)

	offers, err = repo.BrowseOffers(viewer.ID, "", "expert")
	require.NoError(t, err)
	assert.Empty(t, offers)

	offers, err = repo.BrowseOffers(viewer.ID, fmt.Sprint(games.ID), "any")
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, chessOffer.ID, offers[0].ID)

	_, err = repo.BrowseOffers(viewer.ID, "not-a-number", "")
	assert.Error(t, err)
}
