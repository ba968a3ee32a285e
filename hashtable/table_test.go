package hashtable_test

import (
	"fmt"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/jcorbin/symtab/hashtable"
	"github.com/jcorbin/symtab/internal/logio"
	"github.com/jcorbin/symtab/internal/panicerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// identity places integer keys at key mod capacity, so that tests may arrange
// collisions.
func identity(k int) uint64 { return uint64(k) }

func newIntTable(opts ...hashtable.Option[int, string]) *hashtable.Table[int, string] {
	opts = append([]hashtable.Option[int, string]{
		hashtable.WithHasher[int, string](identity),
	}, opts...)
	return hashtable.New(opts...)
}

func Test_Table(t *testing.T) {
	for _, tc := range []tableTestCase{
		tableTest("basic",
			"init", func(t *testing.T, tab *hashtable.Table[int, string]) {
				require.Equal(t, 0, tab.Len(), "expected empty table")
				require.Equal(t, 0, tab.Cap(), "expected no initial storage")
				_, ok := tab.Get(1)
				assert.False(t, ok, "expected miss on empty table")
				assert.Nil(t, tab.Ref(1), "expected nil ref on empty table")
				assert.False(t, tab.Contains(1), "expected no key in empty table")
				_, ok = tab.Remove(1)
				assert.False(t, ok, "expected nothing to remove from empty table")
			},

			"1 -> a", func(t *testing.T, tab *hashtable.Table[int, string]) {
				_, replaced := tab.Insert(1, "a")
				require.False(t, replaced, "expected a new key")
				require.Equal(t, 1, tab.Len())
				require.Equal(t, hashtable.MinCapacity, tab.Cap(), "expected first growth to the floor capacity")
				expectValue(t, tab, 1, "a")
			},

			"1 -> b", func(t *testing.T, tab *hashtable.Table[int, string]) {
				prev, replaced := tab.Insert(1, "b")
				require.True(t, replaced, "expected an existing key")
				require.Equal(t, "a", prev, "expected previous value")
				require.Equal(t, 1, tab.Len(), "expected no change in length")
				expectValue(t, tab, 1, "b")
			},

			"ref update", func(t *testing.T, tab *hashtable.Table[int, string]) {
				ref := tab.Ref(1)
				require.NotNil(t, ref, "expected ref to existing key")
				*ref = "c"
				expectValue(t, tab, 1, "c")
				assert.Nil(t, tab.Ref(2), "expected nil ref to missing key")
			},

			"remove 1", func(t *testing.T, tab *hashtable.Table[int, string]) {
				val, ok := tab.Remove(1)
				require.True(t, ok, "expected removal")
				require.Equal(t, "c", val, "expected removed value")
				require.Equal(t, 0, tab.Len())
				expectMissing(t, tab, 1)
				_, ok = tab.Remove(1)
				require.False(t, ok, "expected second removal to miss")
			},
		),

		tableTest("removal keeps collision chains",
			"collide 1 65 129", func(t *testing.T, tab *hashtable.Table[int, string]) {
				tab.Insert(1, "a")
				tab.Insert(65, "b")
				tab.Insert(129, "c")
				expectDump(t, tab,
					"# Table Dump",
					"  len: 3 cap: 64 deleted: 0 vacant: 61",
					"  @ 1 1 => \"a\"",
					"  @ 2 65 => \"b\" home:1",
					"  @ 3 129 => \"c\" home:1",
				)
			},

			"remove head of chain", func(t *testing.T, tab *hashtable.Table[int, string]) {
				_, ok := tab.Remove(1)
				require.True(t, ok, "expected removal")
				expectMissing(t, tab, 1)
				expectValue(t, tab, 65, "b")
				expectValue(t, tab, 129, "c")
				expectDump(t, tab,
					"# Table Dump",
					"  len: 2 cap: 64 deleted: 1 vacant: 61",
					"  @ 1 deleted",
					"  @ 2 65 => \"b\" home:1",
					"  @ 3 129 => \"c\" home:1",
				)
			},

			"remove middle of chain", func(t *testing.T, tab *hashtable.Table[int, string]) {
				_, ok := tab.Remove(65)
				require.True(t, ok, "expected removal")
				expectMissing(t, tab, 65)
				expectValue(t, tab, 129, "c")
			},

			"reinsert does not duplicate", func(t *testing.T, tab *hashtable.Table[int, string]) {
				prev, replaced := tab.Insert(129, "C")
				require.True(t, replaced, "expected 129 to be found past the tombstones")
				require.Equal(t, "c", prev)
				require.Equal(t, 1, tab.Len())
			},

			"insert reuses first tombstone", func(t *testing.T, tab *hashtable.Table[int, string]) {
				_, replaced := tab.Insert(193, "d")
				require.False(t, replaced)
				expectDump(t, tab,
					"# Table Dump",
					"  len: 2 cap: 64 deleted: 1 vacant: 61",
					"  @ 1 193 => \"d\"",
					"  @ 2 deleted",
					"  @ 3 129 => \"C\" home:1",
				)
			},
		),

		tableTest("wrap around",
			"collide at the end", func(t *testing.T, tab *hashtable.Table[int, string]) {
				tab.Insert(63, "a")
				tab.Insert(127, "b")
				tab.Insert(191, "c")
				expectDump(t, tab,
					"# Table Dump",
					"  len: 3 cap: 64 deleted: 0 vacant: 61",
					"  @ 0 127 => \"b\" home:63",
					"  @ 1 191 => \"c\" home:63",
					"  @63 63 => \"a\"",
				)
			},

			"remove across the end", func(t *testing.T, tab *hashtable.Table[int, string]) {
				tab.Remove(63)
				expectValue(t, tab, 127, "b")
				expectValue(t, tab, 191, "c")
				expectMissing(t, tab, 255)
			},
		),

		tableTest("growth",
			"fill to the load limit", func(t *testing.T, tab *hashtable.Table[int, string]) {
				for i := 0; i < 48; i++ {
					tab.Insert(i, fmt.Sprint(i))
				}
				require.Equal(t, 48, tab.Len())
				require.Equal(t, 64, tab.Cap(), "expected no growth below the load limit")
			},

			"cross the load limit", func(t *testing.T, tab *hashtable.Table[int, string]) {
				tab.Insert(48, "48")
				require.Equal(t, 49, tab.Len())
				require.Equal(t, 128, tab.Cap(), "expected doubled capacity")
				for i := 0; i < 49; i++ {
					expectValue(t, tab, i, fmt.Sprint(i))
				}
			},

			"keep growing", func(t *testing.T, tab *hashtable.Table[int, string]) {
				for i := 49; i < 1000; i++ {
					tab.Insert(i*7, fmt.Sprint(i))
				}
				require.Equal(t, 1000, tab.Len())
				require.Equal(t, 2048, tab.Cap())
				for i := 0; i < 49; i++ {
					expectValue(t, tab, i, fmt.Sprint(i))
				}
				for i := 49; i < 1000; i++ {
					expectValue(t, tab, i*7, fmt.Sprint(i))
				}
			},
		),
	} {
		t.Run(tc.name, func(t *testing.T) {
			tcLogOut := &logio.Writer{Logf: t.Logf}
			log.SetOutput(tcLogOut)
			defer log.SetOutput(os.Stderr)

			tab := newIntTable(hashtable.WithLogf[int, string](log.Printf))
			defer func() {
				if t.Failed() {
					var sb strings.Builder
					tab.Dump(&sb)
					t.Logf("%v", sb.String())
				}
			}()

			for _, step := range tc.steps {
				if !t.Run(step.name, func(t *testing.T) {
					stepLogOut := &logio.Writer{Logf: t.Logf}
					log.SetOutput(stepLogOut)
					defer log.SetOutput(tcLogOut)

					isolateTest(t, step.bind(tab))
				}) {
					break
				}
			}
		})
	}
}

func Test_Table_churn(t *testing.T) {
	tab := newIntTable()
	for i := 0; i < 10000; i++ {
		tab.Insert(i, "x")
		if i >= 10 {
			_, ok := tab.Remove(i - 10)
			require.True(t, ok, "expected to remove %v", i-10)
		}
		require.Equal(t, hashtable.MinCapacity, tab.Cap(), "expected tombstones to be compacted, not grown, @%v", i)
	}
	require.Equal(t, 10, tab.Len())
	for i := 9990; i < 10000; i++ {
		expectValue(t, tab, i, "x")
	}
}

func Test_Table_rehashLog(t *testing.T) {
	var logs []string
	tab := newIntTable(hashtable.WithLogf[int, string](func(mess string, args ...interface{}) {
		logs = append(logs, fmt.Sprintf(mess, args...))
	}))
	for i := 0; i < 49; i++ {
		tab.Insert(i, "")
	}
	assert.Equal(t, []string{
		"rehash cap:0 -> 64 len:0 dropped:0",
		"rehash cap:64 -> 128 len:48 dropped:0",
	}, logs)
}

func Test_Table_withCapacity(t *testing.T) {
	for _, tc := range []struct {
		n   int
		cap int
	}{
		{0, 0},
		{1, 64},
		{47, 64},
		{48, 128},
		{100, 256},
	} {
		t.Run(fmt.Sprint(tc.n), func(t *testing.T) {
			tab := newIntTable(hashtable.WithCapacity[int, string](tc.n))
			require.Equal(t, tc.cap, tab.Cap())
			for i := 0; i < tc.n; i++ {
				tab.Insert(i, "")
			}
			assert.Equal(t, tc.cap, tab.Cap(), "expected no growth while filling to %v", tc.n)
		})
	}
}

func Test_Table_iteration(t *testing.T) {
	tab := newIntTable()
	for _, k := range []int{3, 65, 1, 2} {
		tab.Insert(k, fmt.Sprint(k))
	}

	var keys []int
	for k, v := range tab.All() {
		keys = append(keys, k)
		assert.Equal(t, fmt.Sprint(k), v, "expected value for key %v", k)
	}
	assert.Equal(t, []int{65, 1, 3, 2}, keys, "expected storage order")

	keys = keys[:0]
	for k := range tab.Keys() {
		keys = append(keys, k)
	}
	assert.Equal(t, []int{65, 1, 3, 2}, keys, "expected a fresh traversal")

	keys = keys[:0]
	for k := range tab.Keys() {
		keys = append(keys, k)
		if len(keys) == 2 {
			break
		}
	}
	assert.Equal(t, []int{65, 1}, keys, "expected early stop")

	tab.Remove(2)
	keys = keys[:0]
	for k := range tab.Keys() {
		keys = append(keys, k)
	}
	assert.Equal(t, []int{65, 1, 3}, keys, "expected tombstones to be skipped")
}

func Test_Table_defaultHasher(t *testing.T) {
	tab := hashtable.New[string, int]()
	for i := 0; i < 500; i++ {
		_, replaced := tab.Insert(fmt.Sprintf("key-%d", i), i)
		require.False(t, replaced)
	}
	for i := 0; i < 500; i += 2 {
		_, ok := tab.Remove(fmt.Sprintf("key-%d", i))
		require.True(t, ok)
	}
	require.Equal(t, 250, tab.Len())
	for i := 0; i < 500; i++ {
		val, ok := tab.Get(fmt.Sprintf("key-%d", i))
		if i%2 == 0 {
			assert.False(t, ok, "expected key-%d to be removed", i)
		} else if assert.True(t, ok, "expected key-%d", i) {
			assert.Equal(t, i, val)
		}
	}
}

func Test_Table_dumpQuotesStrings(t *testing.T) {
	tab := hashtable.New[string, string](hashtable.WithHasher[string, string](func(string) uint64 { return 1 }))
	tab.Insert("x\ny", "v\n")
	tab.Insert("", "\tw")

	var sb strings.Builder
	require.NoError(t, tab.Dump(&sb))
	assert.Equal(t, strings.Join([]string{
		"# Table Dump",
		"  len: 2 cap: 64 deleted: 0 vacant: 62",
		`  @ 1 "x\ny" => "v\n"`,
		`  @ 2 "" => "\tw" home:1`,
	}, "\n")+"\n", sb.String())
}

func Test_XXHash(t *testing.T) {
	assert.Equal(t, hashtable.XXHash("alex"), hashtable.XXHash("alex"))
	assert.NotEqual(t, hashtable.XXHash("alex"), hashtable.XXHash("alexutz"))
	assert.Equal(t, hashtable.XXHash("alex"), hashtable.SeededXXHash(0)("alex"))

	seeded := hashtable.SeededXXHash(42)
	assert.Equal(t, seeded("alex"), seeded("alex"))
	assert.NotEqual(t, hashtable.XXHash("alex"), seeded("alex"))

	a := hashtable.New(hashtable.WithHasher[string, int](seeded))
	b := hashtable.New(hashtable.WithHasher[string, int](hashtable.SeededXXHash(42)))
	for i, s := range []string{"alex", "alexutz", "nuexista", "new value"} {
		a.Insert(s, i)
		b.Insert(s, i)
	}
	var da, db strings.Builder
	require.NoError(t, a.Dump(&da))
	require.NoError(t, b.Dump(&db))
	assert.Equal(t, da.String(), db.String(), "expected same seed to give the same layout")
}

func expectValue(t *testing.T, tab *hashtable.Table[int, string], key int, value string) {
	val, ok := tab.Get(key)
	require.True(t, ok, "expected key %v", key)
	require.Equal(t, value, val, "expected value for key %v", key)
	require.True(t, tab.Contains(key), "expected to contain key %v", key)
}

func expectMissing(t *testing.T, tab *hashtable.Table[int, string], key int) {
	_, ok := tab.Get(key)
	require.False(t, ok, "expected no key %v", key)
	require.False(t, tab.Contains(key), "expected not to contain key %v", key)
}

func expectDump(t *testing.T, tab *hashtable.Table[int, string], lines ...string) {
	var sb strings.Builder
	require.NoError(t, tab.Dump(&sb), "unexpected dump error")
	require.Equal(t, strings.Join(lines, "\n")+"\n", sb.String(), "expected slot layout")
}

func isolateTest(t *testing.T, f func(t *testing.T)) {
	if err := panicerr.Recover(t.Name(), func() error {
		f(t)
		return nil
	}); err != nil {
		t.Logf("%+v", err)
		t.Fail()
	}
}

func tableTest(name string, args ...interface{}) (tc tableTestCase) {
	tc.name = name
	for i := 0; i < len(args); i++ {
		var step tableTestStep

		step.name = args[i].(string)

		if i++; i >= len(args) {
			panic("tableTest: missing function argument after name")
		}
		step.f = args[i].(func(t *testing.T, tab *hashtable.Table[int, string]))

		tc.steps = append(tc.steps, step)
	}
	return tc
}

type tableTestCase struct {
	name  string
	steps []tableTestStep
}

type tableTestStep struct {
	name string
	f    func(t *testing.T, tab *hashtable.Table[int, string])

	tab *hashtable.Table[int, string]
}

func (step tableTestStep) bind(tab *hashtable.Table[int, string]) func(t *testing.T) {
	step.tab = tab
	return step.boundTest
}

func (step tableTestStep) boundTest(t *testing.T) {
	step.f(t, step.tab)
}
