package app

// MinPlayersToStartGame defines the minimum number of occupied seats required to start a game.
const MinPlayersToStartGame = 2
