package relations

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geula-list/registry/internal/models"
)

// countAppearances walks the tree counting how often each registered person
// id shows up.
func countAppearances(node *TreeNode, counts map[uint]int) {
	if node == nil {
		return
	}
	if node.ID != 0 {
		counts[node.ID]++
	}
	for _, children := range node.Relations {
		for _, c := range children {
			countAppearances(c, counts)
		}
	}
}

func TestBuildTree_SpouseCycleTerminates(t *testing.T) {
	svc, gdb := newTestService(t)
	a := mustCreatePerson(t, gdb, "Avraham", "Stein", models.SexMale)
	b := mustCreatePerson(t, gdb, "Bella", "Stein", models.SexFemale)

	// A -husband-> B plus the auto reverse B -wife-> A: a two-node cycle.
	_, err := svc.Create(CreateRequest{
		OwnerID:         a.ID,
		RelationType:    "husband",
		RelatedPersonID: &b.ID,
		CreateReverse:   true,
	})
	require.NoError(t, err)

	tree, err := svc.BuildTree(a.ID, 3)
	require.NoError(t, err)
	require.NotNil(t, tree)

	counts := map[uint]int{}
	countAppearances(tree, counts)
	assert.Equal(t, 1, counts[a.ID], "root appears exactly once")
	assert.Equal(t, 1, counts[b.ID], "spouse appears exactly once")

	// B was expanded under A; B's own subtree must not re-expand A.
	spouses := tree.Relations["husband"]
	require.Len(t, spouses, 1)
	assert.Empty(t, spouses[0].Relations)
}

func TestBuildTree_DepthBound(t *testing.T) {
	svc, gdb := newTestService(t)
	a := mustCreatePerson(t, gdb, "A", "X", models.SexMale)
	b := mustCreatePerson(t, gdb, "B", "X", models.SexMale)
	c := mustCreatePerson(t, gdb, "C", "X", models.SexMale)

	// chain: A -son-> B -son-> C
	_, err := svc.Create(CreateRequest{OwnerID: a.ID, RelationType: "son", RelatedPersonID: &b.ID})
	require.NoError(t, err)
	_, err = svc.Create(CreateRequest{OwnerID: b.ID, RelationType: "son", RelatedPersonID: &c.ID})
	require.NoError(t, err)

	shallow, err := svc.BuildTree(a.ID, 1)
	require.NoError(t, err)
	require.NotNil(t, shallow)
	assert.Empty(t, shallow.Relations, "depth 1 is the root alone")

	two, err := svc.BuildTree(a.ID, 2)
	require.NoError(t, err)
	require.Len(t, two.Relations["son"], 1)
	assert.Empty(t, two.Relations["son"][0].Relations, "grandchild level cut off at depth 2")

	three, err := svc.BuildTree(a.ID, 3)
	require.NoError(t, err)
	require.Len(t, three.Relations["son"], 1)
	require.Len(t, three.Relations["son"][0].Relations["son"], 1)
	assert.Equal(t, c.ID, three.Relations["son"][0].Relations["son"][0].ID)

	none, err := svc.BuildTree(a.ID, 0)
	require.NoError(t, err)
	assert.Nil(t, none, "non-positive depth yields no tree")
}

func TestBuildTree_ExternalStubIsLeaf(t *testing.T) {
	svc, gdb := newTestService(t)
	a := mustCreatePerson(t, gdb, "A", "X", models.SexMale)

	_, err := svc.Create(CreateRequest{
		OwnerID:      a.ID,
		RelationType: "grandfather",
		External: &models.ExternalPersonInfo{
			FirstName: "Moshe", LastName: "Katz",
			Sex: models.SexMale, IsDeceased: true,
		},
	})
	require.NoError(t, err)

	tree, err := svc.BuildTree(a.ID, 3)
	require.NoError(t, err)
	stubs := tree.Relations["grandfather"]
	require.Len(t, stubs, 1)

	stub := stubs[0]
	assert.True(t, stub.NotInDirectory)
	assert.Zero(t, stub.ID)
	assert.Equal(t, "Moshe", stub.FirstName)
	require.NotNil(t, stub.External)
	assert.True(t, stub.External.IsDeceased)
	assert.Empty(t, stub.Relations, "external stubs are never expanded")

	// The depth bound applies to stubs the same as to registered targets.
	shallow, err := svc.BuildTree(a.ID, 1)
	require.NoError(t, err)
	assert.Empty(t, shallow.Relations, "depth 1 is the root alone, stubs included")
}

func TestBuildTree_RootNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.BuildTree(777, 2)
	assert.True(t, errors.Is(err, ErrNotFound))
}
