package app

// MinPlayersToStartGame is the seat threshold below which the owner cannot
// start a round. Kept in one place so local runs can lower it without hunting
// through the relay.
const MinPlayersToStartGame = 2
