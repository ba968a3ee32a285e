/* Package symtab: a symbol table over an open addressing hash table.

A symbol table gives each distinct token a small integer identifier: the first
token ever seen becomes 0, the next new token 1, and so on. Seeing a token
again yields the identifier it already has. Identifiers are never given back;
removing a token leaves a permanent gap, so an identifier, once handed out,
names at most one token for the life of the table.

Tokens are mapped to identifiers by a hashtable.Table[string, int], which
resolves collisions by linear probing and keeps removed slots as tombstones
(see package hashtable). Identifiers are mapped back to tokens by an ordered
secondary index, which also gives listings in identifier order.

Neither the Table here nor the hashtable.Table beneath it does any locking;
callers sharing one across goroutines must serialize access themselves.

*/
package symtab
